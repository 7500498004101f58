package movement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estoqueapp/estoque-api/internal/application/stock"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

// CreateMovementUseCase crea una transferencia entre subsectores de forma
// transaccional: verifica saldo, inserta cabecera e ítem (PENDING), debita el
// origen y acredita el destino con bloqueo de fila (SELECT FOR UPDATE).
type CreateMovementUseCase struct {
	txRunner  TxRunner
	evaluator ThresholdEvaluator
	log       *logger.Logger
}

// NewCreateMovementUseCase construye el caso de uso.
func NewCreateMovementUseCase(txRunner TxRunner, evaluator ThresholdEvaluator, log *logger.Logger) *CreateMovementUseCase {
	return &CreateMovementUseCase{txRunner: txRunner, evaluator: evaluator, log: log}
}

// CreateMovementInput entrada para crear una movimentación de un producto.
// Origen y destino pueden coincidir (transferencia al mismo subsector no se
// rechaza).
type CreateMovementInput struct {
	SourceSubsectorID      string
	DestinationSubsectorID string
	TransactionKind        string
	ProductID              string
	Quantity               int64
	UnitExitPrice          decimal.Decimal
	Discount               decimal.Decimal
}

func (in CreateMovementInput) validate() error {
	if in.SourceSubsectorID == "" || in.DestinationSubsectorID == "" || in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidTransactionKind(in.TransactionKind) {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !in.UnitExitPrice.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.Discount.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateMovement ejecuta los pasos del motor en orden estricto dentro de una
// transacción y devuelve el ítem creado con su estado PENDING. Si el saldo en
// origen es insuficiente falla con ErrInsufficientStock sin escrituras
// parciales. Tras el commit dispara la evaluación de umbrales para ambos
// pares (producto, subsector); los fallos de evaluación se registran y no se
// propagan.
func (uc *CreateMovementUseCase) CreateMovement(ctx context.Context, input CreateMovementInput) (*entity.MovementLineItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	var (
		item      *entity.MovementLineItem
		sourceQty int64
		destQty   int64
	)

	err := uc.txRunner.RunMovement(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		// Verificación de saldo con la fila de origen bloqueada: si falla,
		// la transacción se revierte sin dejar rastro.
		entry, err := stockRepo.GetForUpdate(ctx, input.ProductID, input.SourceSubsectorID)
		if err != nil {
			return err
		}
		if entry == nil || entry.Quantity < input.Quantity {
			return domain.ErrInsufficientStock
		}

		mov := &entity.Movement{
			ID:                     uuid.New().String(),
			Timestamp:              now,
			SourceSubsectorID:      input.SourceSubsectorID,
			DestinationSubsectorID: input.DestinationSubsectorID,
			TransactionKind:        input.TransactionKind,
		}
		if err := movRepo.CreateMovement(ctx, mov); err != nil {
			return err
		}

		item = &entity.MovementLineItem{
			ID:            uuid.New().String(),
			MovementID:    mov.ID,
			ProductID:     input.ProductID,
			Quantity:      input.Quantity,
			UnitExitPrice: input.UnitExitPrice,
			Discount:      input.Discount,
			Status:        entity.StatusPending,
		}
		if err := movRepo.CreateLineItem(ctx, item); err != nil {
			return err
		}

		sourceQty, err = stock.Apply(ctx, stockRepo, input.ProductID, input.SourceSubsectorID, input.Quantity, entity.AdjustDebit, now)
		if err != nil {
			return err
		}
		destQty, err = stock.Apply(ctx, stockRepo, input.ProductID, input.DestinationSubsectorID, input.Quantity, entity.AdjustCredit, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.evaluateAfterMutation(ctx, input.ProductID, input.SourceSubsectorID, sourceQty)
	uc.evaluateAfterMutation(ctx, input.ProductID, input.DestinationSubsectorID, destQty)

	return item, nil
}

// evaluateAfterMutation dispara la evaluación de umbrales sin bloquear el
// resultado de la movimentación.
func (uc *CreateMovementUseCase) evaluateAfterMutation(ctx context.Context, productID, subsectorID string, qty int64) {
	if uc.evaluator == nil {
		return
	}
	if _, err := uc.evaluator.Evaluate(ctx, productID, subsectorID, qty); err != nil {
		uc.log.Warn().Err(err).
			Str("product_id", productID).
			Str("subsector_id", subsectorID).
			Msg("evaluación de umbrales tras movimentación")
	}
}
