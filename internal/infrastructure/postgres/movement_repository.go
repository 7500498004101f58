package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// CreateMovement persiste la cabecera de una movimentación.
func (r *MovementRepo) CreateMovement(ctx context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, ts, source_subsector_id, destination_subsector_id, transaction_kind)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.Timestamp, movement.SourceSubsectorID,
		movement.DestinationSubsectorID, movement.TransactionKind,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// CreateLineItem persiste una línea de producto de la movimentación.
func (r *MovementRepo) CreateLineItem(ctx context.Context, item *entity.MovementLineItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_items (id, movement_id, product_id, quantity, unit_exit_price, discount, status, rejection_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.MovementID, item.ProductID, item.Quantity,
		item.UnitExitPrice, item.Discount, item.Status, item.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("create line item: %w", err)
	}
	return nil
}

// GetMovement obtiene una cabecera por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	query := `
		SELECT id, ts, source_subsector_id, destination_subsector_id, transaction_kind
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Timestamp, &m.SourceSubsectorID, &m.DestinationSubsectorID, &m.TransactionKind,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// GetLineItem obtiene un ítem por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetLineItem(ctx context.Context, id string) (*entity.MovementLineItem, error) {
	return r.getLineItem(ctx, id, false)
}

// GetLineItemForUpdate obtiene un ítem y bloquea la fila (SELECT FOR UPDATE)
// para la transición de estado. Devuelve nil si no existe.
func (r *MovementRepo) GetLineItemForUpdate(ctx context.Context, id string) (*entity.MovementLineItem, error) {
	return r.getLineItem(ctx, id, true)
}

func (r *MovementRepo) getLineItem(ctx context.Context, id string, forUpdate bool) (*entity.MovementLineItem, error) {
	query := `
		SELECT id, movement_id, product_id, quantity, unit_exit_price, discount, status, COALESCE(rejection_reason, '')
		FROM movement_items WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var it entity.MovementLineItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.MovementID, &it.ProductID, &it.Quantity,
		&it.UnitExitPrice, &it.Discount, &it.Status, &it.RejectionReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get line item: %w", err)
	}
	return &it, nil
}

// UpdateLineItemStatus persiste la transición de estado de un ítem. El motivo
// solo se escribe para REJECTED; para los demás estados queda NULL.
func (r *MovementRepo) UpdateLineItemStatus(ctx context.Context, id, status, reason string) error {
	query := `
		UPDATE movement_items
		SET status = $2, rejection_reason = CASE WHEN $2 = 'REJECTED' THEN NULLIF($3, '') ELSE NULL END
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, reason)
	if err != nil {
		return fmt.Errorf("update line item status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update line item status: ítem %s no existe", id)
	}
	return nil
}

// ListPendingForDestination lista ítems PENDING con destino en el subsector,
// enriquecidos con producto y origen, ordenados por fecha descendente.
func (r *MovementRepo) ListPendingForDestination(ctx context.Context, subsectorID string) ([]entity.PendingReceipt, error) {
	query := `
		SELECT mi.id, m.id, m.ts, ss.name, m.transaction_kind,
		       p.name, b.name, COALESCE(p.color, ''), COALESCE(p.flavor, ''),
		       mi.quantity, mi.unit_exit_price, mi.discount, mi.status
		FROM movement_items mi
		JOIN movements m ON m.id = mi.movement_id
		JOIN subsectors ss ON ss.id = m.source_subsector_id
		JOIN products p ON p.id = mi.product_id
		JOIN catalog_references b ON b.id = p.brand_id
		WHERE mi.status = 'PENDING' AND m.destination_subsector_id = $1
		ORDER BY m.ts DESC`
	rows, err := r.q.Query(ctx, query, subsectorID)
	if err != nil {
		return nil, fmt.Errorf("list pending receipts: %w", err)
	}
	defer rows.Close()

	var list []entity.PendingReceipt
	for rows.Next() {
		var pr entity.PendingReceipt
		if err := rows.Scan(
			&pr.LineItemID, &pr.MovementID, &pr.Timestamp, &pr.SourceSubsectorName, &pr.TransactionKind,
			&pr.ProductName, &pr.BrandName, &pr.Color, &pr.Flavor,
			&pr.Quantity, &pr.UnitExitPrice, &pr.Discount, &pr.Status,
		); err != nil {
			return nil, fmt.Errorf("scan pending receipt: %w", err)
		}
		list = append(list, pr)
	}
	return list, rows.Err()
}
