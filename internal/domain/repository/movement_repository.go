package repository

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia para movimentaciones y sus ítems.
type MovementRepository interface {
	CreateMovement(ctx context.Context, movement *entity.Movement) error
	CreateLineItem(ctx context.Context, item *entity.MovementLineItem) error
	GetMovement(ctx context.Context, id string) (*entity.Movement, error)
	GetLineItem(ctx context.Context, id string) (*entity.MovementLineItem, error)
	// GetLineItemForUpdate bloquea el ítem para la transición de estado.
	GetLineItemForUpdate(ctx context.Context, id string) (*entity.MovementLineItem, error)
	// UpdateLineItemStatus persiste la transición de estado; reason solo se
	// escribe para REJECTED.
	UpdateLineItemStatus(ctx context.Context, id, status, reason string) error
	// ListPendingForDestination ítems PENDING con destino en el subsector,
	// enriquecidos y ordenados por fecha de movimentación descendente.
	ListPendingForDestination(ctx context.Context, subsectorID string) ([]entity.PendingReceipt, error)
}
