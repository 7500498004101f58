package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementación de SectorRepository sobre PostgreSQL (usable con pool o tx).
type SectorRepo struct {
	q Querier
}

// NewSectorRepository construye el adaptador de la jerarquía de sectores.
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

// CreateSuperSector persiste un super sector. Nombre único global.
func (r *SectorRepo) CreateSuperSector(ctx context.Context, s *entity.SuperSector) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO super_sectors (id, name) VALUES ($1, $2)`, s.ID, s.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create super sector: %w", err)
	}
	return nil
}

// CreateSector persiste un sector. Nombre único dentro de su super sector.
func (r *SectorRepo) CreateSector(ctx context.Context, s *entity.Sector) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO sectors (id, super_sector_id, name) VALUES ($1, $2, $3)`,
		s.ID, s.SuperSectorID, s.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sector: %w", err)
	}
	return nil
}

// CreateSubsector persiste un subsector. Nombre único dentro de su sector.
func (r *SectorRepo) CreateSubsector(ctx context.Context, s *entity.Subsector) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO subsectors (id, sector_id, name) VALUES ($1, $2, $3)`,
		s.ID, s.SectorID, s.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create subsector: %w", err)
	}
	return nil
}

// ListSuperSectors lista todos los super sectores por nombre.
func (r *SectorRepo) ListSuperSectors(ctx context.Context) ([]entity.SuperSector, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM super_sectors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list super sectors: %w", err)
	}
	defer rows.Close()

	var list []entity.SuperSector
	for rows.Next() {
		var s entity.SuperSector
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan super sector: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListSectors lista sectores; filtra por super sector si superSectorID no es vacío.
func (r *SectorRepo) ListSectors(ctx context.Context, superSectorID string) ([]entity.Sector, error) {
	query := `
		SELECT id, super_sector_id, name FROM sectors
		WHERE $1 = '' OR super_sector_id = $1
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, superSectorID)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()

	var list []entity.Sector
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.SuperSectorID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListSubsectors lista subsectores con sus ancestros resueltos; filtra por
// sector si sectorID no es vacío.
func (r *SectorRepo) ListSubsectors(ctx context.Context, sectorID string) ([]entity.SubsectorPath, error) {
	query := `
		SELECT ss.id, ss.sector_id, ss.name, s.name, sup.name
		FROM subsectors ss
		JOIN sectors s ON s.id = ss.sector_id
		JOIN super_sectors sup ON sup.id = s.super_sector_id
		WHERE $1 = '' OR ss.sector_id = $1
		ORDER BY sup.name, s.name, ss.name`
	rows, err := r.q.Query(ctx, query, sectorID)
	if err != nil {
		return nil, fmt.Errorf("list subsectors: %w", err)
	}
	defer rows.Close()

	var list []entity.SubsectorPath
	for rows.Next() {
		var p entity.SubsectorPath
		if err := rows.Scan(&p.ID, &p.SectorID, &p.Name, &p.SectorName, &p.SuperSectorName); err != nil {
			return nil, fmt.Errorf("scan subsector: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetSubsectorPath obtiene un subsector con su ruta completa. Devuelve nil si
// no existe.
func (r *SectorRepo) GetSubsectorPath(ctx context.Context, subsectorID string) (*entity.SubsectorPath, error) {
	query := `
		SELECT ss.id, ss.sector_id, ss.name, s.name, sup.name
		FROM subsectors ss
		JOIN sectors s ON s.id = ss.sector_id
		JOIN super_sectors sup ON sup.id = s.super_sector_id
		WHERE ss.id = $1`
	var p entity.SubsectorPath
	err := r.q.QueryRow(ctx, query, subsectorID).Scan(
		&p.ID, &p.SectorID, &p.Name, &p.SectorName, &p.SuperSectorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subsector path: %w", err)
	}
	return &p, nil
}
