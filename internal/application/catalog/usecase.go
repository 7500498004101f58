package catalog

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// UseCase catálogo de referencias (marca, modelo, fabricante, embalaje) con
// una única operación de alta-o-búsqueda por nombre sobre la variante
// etiquetada, en lugar de interpolar nombres de tabla.
type UseCase struct {
	refRepo repository.ReferenceRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(refRepo repository.ReferenceRepository) *UseCase {
	return &UseCase{refRepo: refRepo}
}

// FindOrCreateByName devuelve la referencia existente del kind con el mismo
// nombre normalizado (insensible a mayúsculas y acentos) o la crea si no
// existe. Nombre vacío falla con ErrValidation.
func (uc *UseCase) FindOrCreateByName(ctx context.Context, kind entity.ReferenceKind, name string) (*entity.Reference, error) {
	if !kind.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation
	}

	normalized := NormalizeName(name)
	existing, err := uc.refRepo.FindByNormalizedName(ctx, kind, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	ref := &entity.Reference{
		ID:             uuid.New().String(),
		Kind:           kind,
		Name:           name,
		NormalizedName: normalized,
		CreatedAt:      time.Now(),
	}
	if err := uc.refRepo.Create(ctx, ref); err != nil {
		// Carrera con otra alta del mismo nombre: releer.
		if errors.Is(err, domain.ErrDuplicate) {
			return uc.refRepo.FindByNormalizedName(ctx, kind, normalized)
		}
		return nil, err
	}
	return ref, nil
}

// ListByKind referencias de un kind ordenadas por nombre.
func (uc *UseCase) ListByKind(ctx context.Context, kind entity.ReferenceKind) ([]entity.Reference, error) {
	if !kind.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.refRepo.ListByKind(ctx, kind)
}

// NormalizeName normaliza un nombre para comparación: minúsculas, sin
// diacríticos (NFD + remoción de marcas) y sin espacios redundantes.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
