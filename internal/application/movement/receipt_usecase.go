package movement

import (
	"context"
	"strings"
	"time"

	"github.com/estoqueapp/estoque-api/internal/application/stock"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

// ReceiptUseCase máquina de estados de recepción de un ítem de movimentación:
// PENDING → CONFIRMED | REJECTED. No hay transiciones de salida desde los
// estados terminales.
//
// El libro de stock ya fue mutado al crear la movimentación, por lo que
// confirmar no toca el stock. Si reverseOnReject está activo, rechazar genera
// la transferencia compensatoria destino→origen dentro de la misma
// transacción.
type ReceiptUseCase struct {
	txRunner        TxRunner
	movRepo         repository.MovementRepository
	evaluator       ThresholdEvaluator
	reverseOnReject bool
	log             *logger.Logger
}

// NewReceiptUseCase construye el caso de uso. movRepo se usa para lecturas
// fuera de transacción.
func NewReceiptUseCase(txRunner TxRunner, movRepo repository.MovementRepository, evaluator ThresholdEvaluator, reverseOnReject bool, log *logger.Logger) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:        txRunner,
		movRepo:         movRepo,
		evaluator:       evaluator,
		reverseOnReject: reverseOnReject,
		log:             log,
	}
}

// ConfirmReceipt marca un ítem PENDING como CONFIRMED. Falla con
// ErrInvalidTransition si el ítem no está pendiente.
func (uc *ReceiptUseCase) ConfirmReceipt(ctx context.Context, lineItemID string) error {
	return uc.txRunner.RunMovement(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.StockRepository,
	) error {
		item, err := movRepo.GetLineItemForUpdate(ctx, lineItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Status != entity.StatusPending {
			return domain.ErrInvalidTransition
		}
		return movRepo.UpdateLineItemStatus(ctx, lineItemID, entity.StatusConfirmed, "")
	})
}

// RejectReceipt marca un ítem PENDING como REJECTED guardando el motivo, que
// no puede ser vacío (ErrValidation). Con reverseOnReject activo debita el
// destino y acredita el origen en la misma transacción.
func (uc *ReceiptUseCase) RejectReceipt(ctx context.Context, lineItemID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrValidation
	}

	var (
		reversed  bool
		productID string
		srcID     string
		dstID     string
		srcQty    int64
		dstQty    int64
	)

	err := uc.txRunner.RunMovement(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		item, err := movRepo.GetLineItemForUpdate(ctx, lineItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Status != entity.StatusPending {
			return domain.ErrInvalidTransition
		}
		if err := movRepo.UpdateLineItemStatus(ctx, lineItemID, entity.StatusRejected, reason); err != nil {
			return err
		}
		if !uc.reverseOnReject {
			return nil
		}

		mov, err := movRepo.GetMovement(ctx, item.MovementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		dstQty, err = stock.Apply(ctx, stockRepo, item.ProductID, mov.DestinationSubsectorID, item.Quantity, entity.AdjustDebit, now)
		if err != nil {
			return err
		}
		srcQty, err = stock.Apply(ctx, stockRepo, item.ProductID, mov.SourceSubsectorID, item.Quantity, entity.AdjustCredit, now)
		if err != nil {
			return err
		}
		reversed = true
		productID = item.ProductID
		srcID = mov.SourceSubsectorID
		dstID = mov.DestinationSubsectorID
		return nil
	})
	if err != nil {
		return err
	}

	if reversed && uc.evaluator != nil {
		if _, err := uc.evaluator.Evaluate(ctx, productID, dstID, dstQty); err != nil {
			uc.log.Warn().Err(err).Str("subsector_id", dstID).Msg("evaluación de umbrales tras reverso")
		}
		if _, err := uc.evaluator.Evaluate(ctx, productID, srcID, srcQty); err != nil {
			uc.log.Warn().Err(err).Str("subsector_id", srcID).Msg("evaluación de umbrales tras reverso")
		}
	}
	return nil
}

// ListPendingForLocation ítems pendientes con destino en el subsector,
// ordenados por fecha de movimentación descendente.
func (uc *ReceiptUseCase) ListPendingForLocation(ctx context.Context, subsectorID string) ([]entity.PendingReceipt, error) {
	if subsectorID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListPendingForDestination(ctx, subsectorID)
}
