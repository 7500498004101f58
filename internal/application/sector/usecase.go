package sector

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// UseCase gestión de la jerarquía SuperSector > Sector > Subsector. La
// unicidad de nombre es por padre (dos sectores pueden llamarse igual en
// super sectores distintos).
type UseCase struct {
	sectorRepo repository.SectorRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(sectorRepo repository.SectorRepository) *UseCase {
	return &UseCase{sectorRepo: sectorRepo}
}

// AddSuperSector crea un super sector; nombre duplicado falla con
// ErrDuplicate.
func (uc *UseCase) AddSuperSector(ctx context.Context, name string) (*entity.SuperSector, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	s := &entity.SuperSector{ID: uuid.New().String(), Name: name}
	if err := uc.sectorRepo.CreateSuperSector(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// AddSector crea un sector dentro de un super sector.
func (uc *UseCase) AddSector(ctx context.Context, name, superSectorID string) (*entity.Sector, error) {
	name = strings.TrimSpace(name)
	if name == "" || superSectorID == "" {
		return nil, domain.ErrValidation
	}
	s := &entity.Sector{ID: uuid.New().String(), SuperSectorID: superSectorID, Name: name}
	if err := uc.sectorRepo.CreateSector(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// AddSubsector crea un subsector dentro de un sector.
func (uc *UseCase) AddSubsector(ctx context.Context, name, sectorID string) (*entity.Subsector, error) {
	name = strings.TrimSpace(name)
	if name == "" || sectorID == "" {
		return nil, domain.ErrValidation
	}
	s := &entity.Subsector{ID: uuid.New().String(), SectorID: sectorID, Name: name}
	if err := uc.sectorRepo.CreateSubsector(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSuperSectors super sectores ordenados por nombre.
func (uc *UseCase) ListSuperSectors(ctx context.Context) ([]entity.SuperSector, error) {
	return uc.sectorRepo.ListSuperSectors(ctx)
}

// ListSectors sectores, opcionalmente filtrados por super sector.
func (uc *UseCase) ListSectors(ctx context.Context, superSectorID string) ([]entity.Sector, error) {
	return uc.sectorRepo.ListSectors(ctx, superSectorID)
}

// ListSubsectors subsectores con su ruta, opcionalmente filtrados por sector.
func (uc *UseCase) ListSubsectors(ctx context.Context, sectorID string) ([]entity.SubsectorPath, error) {
	return uc.sectorRepo.ListSubsectors(ctx, sectorID)
}

// GetSubsector subsector con los nombres de sus ancestros; ErrNotFound si no
// existe.
func (uc *UseCase) GetSubsector(ctx context.Context, subsectorID string) (*entity.SubsectorPath, error) {
	if subsectorID == "" {
		return nil, domain.ErrInvalidInput
	}
	path, err := uc.sectorRepo.GetSubsectorPath(ctx, subsectorID)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, domain.ErrNotFound
	}
	return path, nil
}
