package entity

// Jerarquía organizacional de tres niveles donde reside físicamente el stock:
// SuperSector > Sector > Subsector. El motor de inventario opera siempre
// sobre el nivel hoja (Subsector).

type SuperSector struct {
	ID   string
	Name string
}

type Sector struct {
	ID            string
	SuperSectorID string
	Name          string
}

type Subsector struct {
	ID       string
	SectorID string
	Name     string
}

// SubsectorPath subsector con los nombres de sus ancestros resueltos.
type SubsectorPath struct {
	Subsector
	SectorName      string
	SuperSectorName string
}

// FullName devuelve la ruta completa legible ("Super > Sector > Subsector").
func (p SubsectorPath) FullName() string {
	return p.SuperSectorName + " > " + p.SectorName + " > " + p.Name
}
