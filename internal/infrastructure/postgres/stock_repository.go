package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el registro de stock de un producto en un subsector.
// Devuelve nil si no existe registro (ausencia = cantidad cero para el caller).
func (r *StockRepo) Get(ctx context.Context, productID, subsectorID string) (*entity.StockEntry, error) {
	query := `
		SELECT product_id, subsector_id, quantity, updated_at
		FROM stock_entries WHERE product_id = $1 AND subsector_id = $2`
	var e entity.StockEntry
	err := r.q.QueryRow(ctx, query, productID, subsectorID).Scan(
		&e.ProductID, &e.SubsectorID, &e.Quantity, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &e, nil
}

// GetForUpdate obtiene el registro y bloquea la fila para update (SELECT FOR UPDATE).
// Devuelve nil si no existe registro.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, subsectorID string) (*entity.StockEntry, error) {
	query := `
		SELECT product_id, subsector_id, quantity, updated_at
		FROM stock_entries WHERE product_id = $1 AND subsector_id = $2
		FOR UPDATE`
	var e entity.StockEntry
	err := r.q.QueryRow(ctx, query, productID, subsectorID).Scan(
		&e.ProductID, &e.SubsectorID, &e.Quantity, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &e, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y subsector).
func (r *StockRepo) Upsert(ctx context.Context, entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (product_id, subsector_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, subsector_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, entry.ProductID, entry.SubsectorID, entry.Quantity, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
