package product_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/internal/application/catalog"
	"github.com/estoqueapp/estoque-api/internal/application/product"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*entity.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) ListWithStock(_ context.Context, _ string) ([]entity.ProductWithStock, error) {
	return nil, nil
}

func (r *memProductRepo) ListAll(_ context.Context, _ string) ([]entity.ProductWithStock, error) {
	var out []entity.ProductWithStock
	for _, p := range r.products {
		out = append(out, entity.ProductWithStock{Product: *p})
	}
	return out, nil
}

func (r *memProductRepo) GetInfo(_ context.Context, _, _ string) (*entity.ProductInfo, error) {
	return nil, nil
}

type memReferenceRepo struct {
	refs []entity.Reference
}

func (r *memReferenceRepo) FindByNormalizedName(_ context.Context, kind entity.ReferenceKind, normalized string) (*entity.Reference, error) {
	for i := range r.refs {
		if r.refs[i].Kind == kind && r.refs[i].NormalizedName == normalized {
			cp := r.refs[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memReferenceRepo) Create(_ context.Context, ref *entity.Reference) error {
	r.refs = append(r.refs, *ref)
	return nil
}

func (r *memReferenceRepo) ListByKind(_ context.Context, kind entity.ReferenceKind) ([]entity.Reference, error) {
	var out []entity.Reference
	for _, ref := range r.refs {
		if ref.Kind == kind {
			out = append(out, ref)
		}
	}
	return out, nil
}

type productFixture struct {
	uc       *product.UseCase
	prodRepo *memProductRepo
	refRepo  *memReferenceRepo
}

func newProductFixture() *productFixture {
	prodRepo := newMemProductRepo()
	refRepo := &memReferenceRepo{}
	return &productFixture{
		uc:       product.NewUseCase(prodRepo, catalog.NewUseCase(refRepo)),
		prodRepo: prodRepo,
		refRepo:  refRepo,
	}
}

func validRegisterInput() product.RegisterInput {
	return product.RegisterInput{
		Name:             "Harina 000 1kg",
		BrandName:        "Molinos",
		ModelName:        "Clásica",
		ManufacturerName: "Molinos Río",
		PackagingName:    "Bolsa 1kg",
		Flavor:           "",
		CostPrice:        decimal.NewFromFloat(800.50),
		SalePrice:        decimal.NewFromFloat(1200.00),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// El alta resuelve marca, modelo, fabricante y embalaje contra el catálogo.
func TestRegister_ResuelveReferencias(t *testing.T) {
	f := newProductFixture()

	p, err := f.uc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.NotEmpty(t, p.BrandID)
	assert.NotEmpty(t, p.ModelID)
	assert.NotEmpty(t, p.ManufacturerID)
	assert.NotEmpty(t, p.PackagingID)
	assert.Len(t, f.refRepo.refs, 4, "una referencia por cada nombre nuevo")
}

// Dos productos con la misma marca comparten la referencia.
func TestRegister_ComparteReferencias(t *testing.T) {
	f := newProductFixture()

	first, err := f.uc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	in := validRegisterInput()
	in.Name = "Harina 0000 1kg"
	in.BrandName = "MOLINOS" // misma marca con otra grafía
	second, err := f.uc.Register(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.BrandID, second.BrandID)
}

// El embalaje es opcional.
func TestRegister_SinEmbalaje(t *testing.T) {
	f := newProductFixture()

	in := validRegisterInput()
	in.PackagingName = ""
	p, err := f.uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, p.PackagingID)
	assert.Len(t, f.refRepo.refs, 3)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	f := newProductFixture()

	cases := []struct {
		name   string
		mutate func(*product.RegisterInput)
	}{
		{"sin nombre", func(in *product.RegisterInput) { in.Name = "  " }},
		{"sin marca", func(in *product.RegisterInput) { in.BrandName = "" }},
		{"sin modelo", func(in *product.RegisterInput) { in.ModelName = "" }},
		{"sin fabricante", func(in *product.RegisterInput) { in.ManufacturerName = "" }},
		{"costo negativo", func(in *product.RegisterInput) { in.CostPrice = decimal.NewFromInt(-1) }},
		{"venta negativa", func(in *product.RegisterInput) { in.SalePrice = decimal.NewFromInt(-1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegisterInput()
			tc.mutate(&in)
			_, err := f.uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, f.prodRepo.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID(t *testing.T) {
	f := newProductFixture()
	created, err := f.uc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	p, err := f.uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)

	_, err = f.uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListWithStock_SubsectorObligatorio(t *testing.T) {
	f := newProductFixture()

	_, err := f.uc.ListWithStock(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
