package dto

// CreateSuperSectorRequest body para crear un super sector.
type CreateSuperSectorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CreateSectorRequest body para crear un sector dentro de un super sector.
type CreateSectorRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	SuperSectorID string `json:"super_sector_id" validate:"required,uuid"`
}

// CreateSubsectorRequest body para crear un subsector dentro de un sector.
type CreateSubsectorRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	SectorID string `json:"sector_id" validate:"required,uuid"`
}

// SubsectorResponse subsector con su ruta completa.
type SubsectorResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	SectorID        string `json:"sector_id"`
	SectorName      string `json:"sector_name"`
	SuperSectorName string `json:"super_sector_name"`
	FullName        string `json:"full_name"`
}
