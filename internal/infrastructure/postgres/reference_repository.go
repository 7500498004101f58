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

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo implementación del catálogo de referencias sobre PostgreSQL.
// Las cuatro tablas de referencia del catálogo comparten una sola tabla
// discriminada por kind, con unicidad (kind, normalized_name).
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador del catálogo.
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

// FindByNormalizedName busca una referencia por nombre normalizado dentro del
// kind. Devuelve nil si no existe.
func (r *ReferenceRepo) FindByNormalizedName(ctx context.Context, kind entity.ReferenceKind, normalized string) (*entity.Reference, error) {
	query := `
		SELECT id, kind, name, normalized_name, created_at
		FROM catalog_references WHERE kind = $1 AND normalized_name = $2`
	var ref entity.Reference
	err := r.q.QueryRow(ctx, query, kind, normalized).Scan(
		&ref.ID, &ref.Kind, &ref.Name, &ref.NormalizedName, &ref.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find reference: %w", err)
	}
	return &ref, nil
}

// Create persiste una referencia. Devuelve ErrDuplicate si ya existe una con
// el mismo nombre normalizado en el kind.
func (r *ReferenceRepo) Create(ctx context.Context, ref *entity.Reference) error {
	if ref.ID == "" {
		ref.ID = uuid.New().String()
	}
	query := `
		INSERT INTO catalog_references (id, kind, name, normalized_name, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, ref.ID, ref.Kind, ref.Name, ref.NormalizedName, ref.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create reference: %w", err)
	}
	return nil
}

// ListByKind lista las referencias de un kind ordenadas por nombre.
func (r *ReferenceRepo) ListByKind(ctx context.Context, kind entity.ReferenceKind) ([]entity.Reference, error) {
	query := `
		SELECT id, kind, name, normalized_name, created_at
		FROM catalog_references WHERE kind = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer rows.Close()

	var list []entity.Reference
	for rows.Next() {
		var ref entity.Reference
		if err := rows.Scan(&ref.ID, &ref.Kind, &ref.Name, &ref.NormalizedName, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		list = append(list, ref)
	}
	return list, rows.Err()
}
