package movement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoqueapp/estoque-api/internal/application/movement"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

type receiptFixture struct {
	uc        *movement.ReceiptUseCase
	movRepo   *memMovementRepo
	stockRepo *memStockRepo
	evaluator *fakeEvaluator
}

func newReceiptFixture(reverseOnReject bool) *receiptFixture {
	movRepo := newMemMovementRepo()
	stockRepo := newMemStockRepo()
	evaluator := &fakeEvaluator{}
	runner := &memTxRunner{mov: movRepo, stock: stockRepo}
	return &receiptFixture{
		uc:        movement.NewReceiptUseCase(runner, movRepo, evaluator, reverseOnReject, logger.Nop()),
		movRepo:   movRepo,
		stockRepo: stockRepo,
		evaluator: evaluator,
	}
}

// seedTransfer deja el estado tal como lo deja el motor de movimentaciones:
// cabecera, ítem PENDING y stock ya movido de origen a destino.
func (f *receiptFixture) seedTransfer(itemID string, qty int64) {
	f.movRepo.movements["mov-1"] = &entity.Movement{
		ID:                     "mov-1",
		Timestamp:              time.Now(),
		SourceSubsectorID:      subsectorX,
		DestinationSubsectorID: subsectorY,
		TransactionKind:        entity.TransactionTransfer,
	}
	f.movRepo.items[itemID] = &entity.MovementLineItem{
		ID:            itemID,
		MovementID:    "mov-1",
		ProductID:     productA,
		Quantity:      qty,
		UnitExitPrice: decimal.NewFromInt(10),
		Discount:      decimal.Zero,
		Status:        entity.StatusPending,
	}
	f.stockRepo.seed(productA, subsectorX, 6)
	f.stockRepo.seed(productA, subsectorY, qty)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConfirmReceipt
// ──────────────────────────────────────────────────────────────────────────────

// Confirmar no toca el stock: el libro ya fue mutado al crear la movimentación.
func TestConfirmReceipt_PendienteAConfirmado(t *testing.T) {
	f := newReceiptFixture(false)
	f.seedTransfer("item-1", 4)

	err := f.uc.ConfirmReceipt(context.Background(), "item-1")
	require.NoError(t, err)

	item, _ := f.movRepo.GetLineItem(context.Background(), "item-1")
	assert.Equal(t, entity.StatusConfirmed, item.Status)
	assert.Equal(t, int64(6), f.stockRepo.quantity(productA, subsectorX))
	assert.Equal(t, int64(4), f.stockRepo.quantity(productA, subsectorY))
}

func TestConfirmReceipt_ItemInexistente(t *testing.T) {
	f := newReceiptFixture(false)

	err := f.uc.ConfirmReceipt(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Los estados terminales no admiten transiciones de salida.
func TestConfirmReceipt_EstadoTerminal(t *testing.T) {
	f := newReceiptFixture(false)
	f.seedTransfer("item-1", 4)

	require.NoError(t, f.uc.ConfirmReceipt(context.Background(), "item-1"))

	err := f.uc.ConfirmReceipt(context.Background(), "item-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "CONFIRMED es terminal")

	f.seedTransfer("item-2", 2)
	require.NoError(t, f.uc.RejectReceipt(context.Background(), "item-2", "producto dañado"))

	err = f.uc.ConfirmReceipt(context.Background(), "item-2")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "REJECTED es terminal")
}

// ──────────────────────────────────────────────────────────────────────────────
// RejectReceipt
// ──────────────────────────────────────────────────────────────────────────────

// El motivo es obligatorio; los espacios en blanco no cuentan.
func TestRejectReceipt_MotivoObligatorio(t *testing.T) {
	f := newReceiptFixture(false)
	f.seedTransfer("item-1", 4)

	for _, reason := range []string{"", "   ", "\t\n"} {
		err := f.uc.RejectReceipt(context.Background(), "item-1", reason)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	item, _ := f.movRepo.GetLineItem(context.Background(), "item-1")
	assert.Equal(t, entity.StatusPending, item.Status, "el ítem sigue pendiente")
}

// Sin reverso configurado, rechazar solo transiciona el estado y guarda el
// motivo; el stock queda donde el motor lo dejó.
func TestRejectReceipt_SinReverso(t *testing.T) {
	f := newReceiptFixture(false)
	f.seedTransfer("item-1", 4)

	err := f.uc.RejectReceipt(context.Background(), "item-1", "  caja incompleta  ")
	require.NoError(t, err)

	item, _ := f.movRepo.GetLineItem(context.Background(), "item-1")
	assert.Equal(t, entity.StatusRejected, item.Status)
	assert.Equal(t, "caja incompleta", item.RejectionReason, "el motivo se guarda recortado")

	assert.Equal(t, int64(6), f.stockRepo.quantity(productA, subsectorX))
	assert.Equal(t, int64(4), f.stockRepo.quantity(productA, subsectorY))
	assert.Empty(t, f.evaluator.calls, "sin reverso no hay mutación que evaluar")
}

// Con reverso activo, rechazar devuelve las unidades al origen en la misma
// transacción y evalúa umbrales para ambos pares.
func TestRejectReceipt_ConReverso(t *testing.T) {
	f := newReceiptFixture(true)
	f.seedTransfer("item-1", 4)

	err := f.uc.RejectReceipt(context.Background(), "item-1", "pedido duplicado")
	require.NoError(t, err)

	item, _ := f.movRepo.GetLineItem(context.Background(), "item-1")
	assert.Equal(t, entity.StatusRejected, item.Status)

	assert.Equal(t, int64(10), f.stockRepo.quantity(productA, subsectorX), "el origen recupera sus unidades")
	assert.Equal(t, int64(0), f.stockRepo.quantity(productA, subsectorY))

	require.Len(t, f.evaluator.calls, 2)
	assert.Equal(t, evalCall{productA, subsectorY, 0}, f.evaluator.calls[0])
	assert.Equal(t, evalCall{productA, subsectorX, 10}, f.evaluator.calls[1])
}

// Si el reverso no puede debitar el destino, toda la operación se revierte:
// el ítem sigue PENDING.
func TestRejectReceipt_ReversoSinStockEnDestino(t *testing.T) {
	f := newReceiptFixture(true)
	f.seedTransfer("item-1", 4)
	// El destino ya consumió las unidades recibidas
	f.stockRepo.seed(productA, subsectorY, 1)

	err := f.uc.RejectReceipt(context.Background(), "item-1", "error de carga")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	item, _ := f.movRepo.GetLineItem(context.Background(), "item-1")
	assert.Equal(t, entity.StatusPending, item.Status, "la transición se revierte con el reverso fallido")
	assert.Equal(t, int64(1), f.stockRepo.quantity(productA, subsectorY))
}

func TestRejectReceipt_ItemInexistente(t *testing.T) {
	f := newReceiptFixture(false)

	err := f.uc.RejectReceipt(context.Background(), "no-existe", "motivo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListPendingForLocation
// ──────────────────────────────────────────────────────────────────────────────

func TestListPendingForLocation_SubsectorVacio(t *testing.T) {
	f := newReceiptFixture(false)

	_, err := f.uc.ListPendingForLocation(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListPendingForLocation_DevuelvePendientes(t *testing.T) {
	f := newReceiptFixture(false)
	f.movRepo.pending = []entity.PendingReceipt{
		{LineItemID: "item-1", ProductName: "Harina 1kg", Quantity: 4, Status: entity.StatusPending},
	}

	list, err := f.uc.ListPendingForLocation(context.Background(), subsectorY)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "item-1", list[0].LineItemID)
}
