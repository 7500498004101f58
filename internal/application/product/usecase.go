package product

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estoqueapp/estoque-api/internal/application/catalog"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// UseCase registro y consulta de variantes de producto. El alta resuelve
// marca, modelo, fabricante y embalaje contra el catálogo de referencias
// (alta-o-búsqueda por nombre).
type UseCase struct {
	productRepo repository.ProductRepository
	catalog     *catalog.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, catalogUC *catalog.UseCase) *UseCase {
	return &UseCase{productRepo: productRepo, catalog: catalogUC}
}

// RegisterInput entrada del alta de producto. Los nombres de referencia se
// resuelven o crean en el catálogo.
type RegisterInput struct {
	Name             string
	BrandName        string
	ModelName        string
	ManufacturerName string
	PackagingName    string
	Color            string
	Flavor           string
	CostPrice        decimal.Decimal
	SalePrice        decimal.Decimal
}

// Register crea la variante de producto. Nombre, marca, modelo y fabricante
// son obligatorios; los precios no pueden ser negativos.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*entity.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || strings.TrimSpace(input.BrandName) == "" ||
		strings.TrimSpace(input.ModelName) == "" || strings.TrimSpace(input.ManufacturerName) == "" {
		return nil, domain.ErrValidation
	}
	if input.CostPrice.LessThan(decimal.Zero) || input.SalePrice.LessThan(decimal.Zero) {
		return nil, domain.ErrValidation
	}

	brand, err := uc.catalog.FindOrCreateByName(ctx, entity.ReferenceBrand, input.BrandName)
	if err != nil {
		return nil, err
	}
	model, err := uc.catalog.FindOrCreateByName(ctx, entity.ReferenceModel, input.ModelName)
	if err != nil {
		return nil, err
	}
	manufacturer, err := uc.catalog.FindOrCreateByName(ctx, entity.ReferenceManufacturer, input.ManufacturerName)
	if err != nil {
		return nil, err
	}

	var packagingID string
	if strings.TrimSpace(input.PackagingName) != "" {
		packaging, err := uc.catalog.FindOrCreateByName(ctx, entity.ReferencePackaging, input.PackagingName)
		if err != nil {
			return nil, err
		}
		packagingID = packaging.ID
	}

	p := &entity.Product{
		ID:             uuid.New().String(),
		Name:           input.Name,
		BrandID:        brand.ID,
		ModelID:        model.ID,
		ManufacturerID: manufacturer.ID,
		PackagingID:    packagingID,
		Color:          strings.TrimSpace(input.Color),
		Flavor:         strings.TrimSpace(input.Flavor),
		CostPrice:      input.CostPrice,
		SalePrice:      input.SalePrice,
		CreatedAt:      time.Now(),
	}
	if err := uc.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID producto por id; ErrNotFound si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListWithStock productos con cantidad > 0 en el subsector.
func (uc *UseCase) ListWithStock(ctx context.Context, subsectorID string) ([]entity.ProductWithStock, error) {
	if subsectorID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.productRepo.ListWithStock(ctx, subsectorID)
}

// ListAll todos los productos; con subsector la cantidad se resuelve para ese
// subsector (0 si no hay registro).
func (uc *UseCase) ListAll(ctx context.Context, subsectorID string) ([]entity.ProductWithStock, error) {
	return uc.productRepo.ListAll(ctx, subsectorID)
}
