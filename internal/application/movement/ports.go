package movement

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimentaciones: o se escriben cabecera, ítem y ambos ajustes de stock, o
// no se escribe nada.
type TxRunner interface {
	RunMovement(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// ThresholdEvaluator puerto hacia el evaluador de umbrales. Se invoca tras
// cada mutación de stock; sus fallos se registran y nunca se propagan al
// resultado de la movimentación.
type ThresholdEvaluator interface {
	Evaluate(ctx context.Context, productID, subsectorID string, currentQuantity int64) (*entity.NotificationRecord, error)
}
