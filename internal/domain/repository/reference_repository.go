package repository

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// ReferenceRepository puerto del catálogo de referencias (marca, modelo,
// fabricante, embalaje) con unicidad por nombre normalizado dentro del kind.
type ReferenceRepository interface {
	FindByNormalizedName(ctx context.Context, kind entity.ReferenceKind, normalized string) (*entity.Reference, error)
	Create(ctx context.Context, ref *entity.Reference) error
	ListByKind(ctx context.Context, kind entity.ReferenceKind) ([]entity.Reference, error)
}
