package repository

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// SectorRepository puerto para la jerarquía SuperSector > Sector > Subsector.
// La jerarquía es inmutable para el motor de inventario; aquí solo se crea y
// consulta.
type SectorRepository interface {
	CreateSuperSector(ctx context.Context, s *entity.SuperSector) error
	CreateSector(ctx context.Context, s *entity.Sector) error
	CreateSubsector(ctx context.Context, s *entity.Subsector) error
	ListSuperSectors(ctx context.Context) ([]entity.SuperSector, error)
	// ListSectors filtra por super sector si superSectorID no es vacío.
	ListSectors(ctx context.Context, superSectorID string) ([]entity.Sector, error)
	// ListSubsectors filtra por sector si sectorID no es vacío.
	ListSubsectors(ctx context.Context, sectorID string) ([]entity.SubsectorPath, error)
	GetSubsectorPath(ctx context.Context, subsectorID string) (*entity.SubsectorPath, error)
}
