package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/internal/application/stock"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	productA    = "00000000-0000-0000-0000-00000000000a"
	subsectorX  = "00000000-0000-0000-0000-0000000000f1"
	subsectorY  = "00000000-0000-0000-0000-0000000000f2"
)

type memStockRepo struct {
	entries map[string]*entity.StockEntry
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{entries: make(map[string]*entity.StockEntry)}
}

func stockKey(productID, subsectorID string) string {
	return productID + "|" + subsectorID
}

func (r *memStockRepo) Get(_ context.Context, productID, subsectorID string) (*entity.StockEntry, error) {
	e, ok := r.entries[stockKey(productID, subsectorID)]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, productID, subsectorID string) (*entity.StockEntry, error) {
	return r.Get(ctx, productID, subsectorID)
}

func (r *memStockRepo) Upsert(_ context.Context, entry *entity.StockEntry) error {
	cp := *entry
	r.entries[stockKey(entry.ProductID, entry.SubsectorID)] = &cp
	return nil
}

func (r *memStockRepo) seed(productID, subsectorID string, qty int64) {
	r.entries[stockKey(productID, subsectorID)] = &entity.StockEntry{
		ProductID:   productID,
		SubsectorID: subsectorID,
		Quantity:    qty,
		UpdatedAt:   time.Now(),
	}
}

func (r *memStockRepo) quantity(productID, subsectorID string) int64 {
	e, ok := r.entries[stockKey(productID, subsectorID)]
	if !ok {
		return 0
	}
	return e.Quantity
}

// memTxRunner ejecuta el callback directamente sobre el repo en memoria.
type memTxRunner struct {
	repo *memStockRepo
}

func (t *memTxRunner) Run(_ context.Context, fn func(repository.StockRepository) error) error {
	return fn(t.repo)
}

func newLedger() (*stock.LedgerUseCase, *memStockRepo) {
	repo := newMemStockRepo()
	return stock.NewLedgerUseCase(&memTxRunner{repo: repo}, repo), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply — créditos y débitos
// ──────────────────────────────────────────────────────────────────────────────

// El primer crédito sobre un par sin registro crea la fila con la cantidad.
func TestApply_CreditoCreaRegistro(t *testing.T) {
	repo := newMemStockRepo()

	qty, err := stock.Apply(context.Background(), repo, productA, subsectorX, 7, entity.AdjustCredit, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(7), qty)
	assert.Equal(t, int64(7), repo.quantity(productA, subsectorX))
}

// Créditos sucesivos acumulan sobre la misma fila.
func TestApply_CreditoAcumula(t *testing.T) {
	repo := newMemStockRepo()
	repo.seed(productA, subsectorX, 10)

	qty, err := stock.Apply(context.Background(), repo, productA, subsectorX, 5, entity.AdjustCredit, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(15), qty)
}

// Un débito que dejaría la cantidad bajo cero falla sin mutar el estado.
func TestApply_DebitoInsuficiente(t *testing.T) {
	repo := newMemStockRepo()
	repo.seed(productA, subsectorX, 3)

	_, err := stock.Apply(context.Background(), repo, productA, subsectorX, 5, entity.AdjustDebit, time.Now())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), repo.quantity(productA, subsectorX),
		"un débito rechazado no debe modificar la cantidad")
}

// Debitar un par sin registro equivale a debitar cantidad cero: falla.
func TestApply_DebitoSobreAusente(t *testing.T) {
	repo := newMemStockRepo()

	_, err := stock.Apply(context.Background(), repo, productA, subsectorX, 1, entity.AdjustDebit, time.Now())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Debitar exactamente el saldo deja la fila en cero: estado terminal válido,
// la fila no desaparece.
func TestApply_DebitoHastaCero(t *testing.T) {
	repo := newMemStockRepo()
	repo.seed(productA, subsectorX, 4)

	qty, err := stock.Apply(context.Background(), repo, productA, subsectorX, 4, entity.AdjustDebit, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)

	entry, err := repo.Get(context.Background(), productA, subsectorX)
	require.NoError(t, err)
	require.NotNil(t, entry, "la fila en cero debe seguir existiendo")
	assert.Equal(t, int64(0), entry.Quantity)
}

// Deltas no positivos se rechazan en ambas direcciones.
func TestApply_DeltaInvalido(t *testing.T) {
	repo := newMemStockRepo()
	repo.seed(productA, subsectorX, 10)

	for _, delta := range []int64{0, -3} {
		_, err := stock.Apply(context.Background(), repo, productA, subsectorX, delta, entity.AdjustCredit, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = stock.Apply(context.Background(), repo, productA, subsectorX, delta, entity.AdjustDebit, time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, int64(10), repo.quantity(productA, subsectorX))
}

// ──────────────────────────────────────────────────────────────────────────────
// LedgerUseCase — consultas y ajustes
// ──────────────────────────────────────────────────────────────────────────────

// La ausencia de registro se lee como cantidad cero, no como error.
func TestLedger_GetQuantityAusente(t *testing.T) {
	ledger, _ := newLedger()

	qty, err := ledger.GetQuantity(context.Background(), productA, subsectorX)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestLedger_HasSufficientStock(t *testing.T) {
	ledger, repo := newLedger()
	repo.seed(productA, subsectorX, 5)

	ok, err := ledger.HasSufficientStock(context.Background(), productA, subsectorX, 5)
	require.NoError(t, err)
	assert.True(t, ok, "5 disponibles cubren 5 solicitadas")

	ok, err = ledger.HasSufficientStock(context.Background(), productA, subsectorX, 6)
	require.NoError(t, err)
	assert.False(t, ok)

	// Sin registro: cualquier cantidad positiva es insuficiente
	ok, err = ledger.HasSufficientStock(context.Background(), productA, subsectorY, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedger_HasSufficientStock_CantidadInvalida(t *testing.T) {
	ledger, _ := newLedger()

	_, err := ledger.HasSufficientStock(context.Background(), productA, subsectorX, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ledger.HasSufficientStock(context.Background(), productA, subsectorX, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// AdjustStock corre dentro de su propia transacción y devuelve la nueva
// cantidad.
func TestLedger_AdjustStock(t *testing.T) {
	ledger, repo := newLedger()
	repo.seed(productA, subsectorX, 8)

	qty, err := ledger.AdjustStock(context.Background(), productA, subsectorX, 3, entity.AdjustDebit)
	require.NoError(t, err)
	assert.Equal(t, int64(5), qty)

	qty, err = ledger.AdjustStock(context.Background(), productA, subsectorX, 2, entity.AdjustCredit)
	require.NoError(t, err)
	assert.Equal(t, int64(7), qty)
}
