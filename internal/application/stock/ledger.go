package stock

import (
	"context"
	"time"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// repositorio de stock atado a esa tx. Serializa ajustes concurrentes sobre la
// misma fila (producto, subsector) junto con SELECT FOR UPDATE.
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}

// LedgerUseCase es el libro de stock: única vía de mutación de StockEntry.
// Invariante: la cantidad nunca es negativa; un débito que la dejaría bajo
// cero falla con ErrInsufficientStock sin mutar estado.
type LedgerUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository
}

// NewLedgerUseCase construye el caso de uso. stockRepo se usa para lecturas
// fuera de transacción.
func NewLedgerUseCase(txRunner TxRunner, stockRepo repository.StockRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, stockRepo: stockRepo}
}

// GetQuantity devuelve la cantidad actual; la ausencia de registro significa
// cero, no error.
func (uc *LedgerUseCase) GetQuantity(ctx context.Context, productID, subsectorID string) (int64, error) {
	entry, err := uc.stockRepo.Get(ctx, productID, subsectorID)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	return entry.Quantity, nil
}

// HasSufficientStock indica si hay al menos requested unidades disponibles.
// requested debe ser un entero positivo.
func (uc *LedgerUseCase) HasSufficientStock(ctx context.Context, productID, subsectorID string, requested int64) (bool, error) {
	if requested <= 0 {
		return false, domain.ErrInvalidInput
	}
	qty, err := uc.GetQuantity(ctx, productID, subsectorID)
	if err != nil {
		return false, err
	}
	return qty >= requested, nil
}

// AdjustStock aplica un crédito o débito de delta unidades dentro de su propia
// transacción (bloqueo de fila incluido) y devuelve la nueva cantidad.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, productID, subsectorID string, delta int64, direction entity.AdjustDirection) (int64, error) {
	var newQty int64
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository) error {
		qty, err := Apply(ctx, stockRepo, productID, subsectorID, delta, direction, time.Now())
		if err != nil {
			return err
		}
		newQty = qty
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

// Apply ejecuta un ajuste usando el repositorio proporcionado (misma
// transacción del caller). Crédito sobre fila ausente crea el registro;
// débito sobre fila ausente o con saldo insuficiente falla con
// ErrInsufficientStock. delta debe ser positivo.
func Apply(ctx context.Context, stockRepo repository.StockRepository, productID, subsectorID string, delta int64, direction entity.AdjustDirection, now time.Time) (int64, error) {
	if delta <= 0 {
		return 0, domain.ErrInvalidInput
	}

	entry, err := stockRepo.GetForUpdate(ctx, productID, subsectorID)
	if err != nil {
		return 0, err
	}

	switch direction {
	case entity.AdjustCredit:
		if entry == nil {
			entry = &entity.StockEntry{ProductID: productID, SubsectorID: subsectorID, Quantity: delta}
		} else {
			entry.Quantity += delta
		}
	case entity.AdjustDebit:
		if entry == nil || entry.Quantity-delta < 0 {
			return 0, domain.ErrInsufficientStock
		}
		entry.Quantity -= delta
	default:
		return 0, domain.ErrInvalidInput
	}

	entry.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, entry); err != nil {
		return 0, err
	}
	return entry.Quantity, nil
}
