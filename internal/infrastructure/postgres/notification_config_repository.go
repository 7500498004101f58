package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.NotificationConfigRepository = (*NotificationConfigRepo)(nil)

// NotificationConfigRepo implementación sobre PostgreSQL (usable con pool o tx).
type NotificationConfigRepo struct {
	q Querier
}

// NewNotificationConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationConfigRepository(q Querier) *NotificationConfigRepo {
	return &NotificationConfigRepo{q: q}
}

// Get obtiene los umbrales de un producto en un subsector. Devuelve nil si no
// hay configuración.
func (r *NotificationConfigRepo) Get(ctx context.Context, productID, subsectorID string) (*entity.NotificationConfig, error) {
	query := `
		SELECT product_id, subsector_id, min_stock, max_stock, active, updated_at
		FROM notification_configs WHERE product_id = $1 AND subsector_id = $2`
	var c entity.NotificationConfig
	err := r.q.QueryRow(ctx, query, productID, subsectorID).Scan(
		&c.ProductID, &c.SubsectorID, &c.MinStock, &c.MaxStock, &c.Active, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification config: %w", err)
	}
	return &c, nil
}

// Upsert inserta o reemplaza los umbrales de un producto+subsector.
func (r *NotificationConfigRepo) Upsert(ctx context.Context, cfg *entity.NotificationConfig) error {
	query := `
		INSERT INTO notification_configs (product_id, subsector_id, min_stock, max_stock, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, subsector_id)
		DO UPDATE SET min_stock = EXCLUDED.min_stock, max_stock = EXCLUDED.max_stock,
		              active = EXCLUDED.active, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		cfg.ProductID, cfg.SubsectorID, cfg.MinStock, cfg.MaxStock, cfg.Active, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert notification config: %w", err)
	}
	return nil
}

// SetActive activa o desactiva una configuración existente.
func (r *NotificationConfigRepo) SetActive(ctx context.Context, productID, subsectorID string, active bool) error {
	query := `
		UPDATE notification_configs SET active = $3, updated_at = now()
		WHERE product_id = $1 AND subsector_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, subsectorID, active)
	if err != nil {
		return fmt.Errorf("set notification config active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set notification config active: configuración no existe")
	}
	return nil
}

// ListActiveWithStock lista configuraciones activas con la cantidad actual
// resuelta (0 si no hay registro de stock), para el escaneo por lotes.
func (r *NotificationConfigRepo) ListActiveWithStock(ctx context.Context) ([]entity.ConfigWithStock, error) {
	query := `
		SELECT nc.product_id, nc.subsector_id, nc.min_stock, nc.max_stock, nc.active, nc.updated_at,
		       COALESCE(se.quantity, 0)
		FROM notification_configs nc
		LEFT JOIN stock_entries se ON se.product_id = nc.product_id AND se.subsector_id = nc.subsector_id
		WHERE nc.active = true`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active configs: %w", err)
	}
	defer rows.Close()

	var list []entity.ConfigWithStock
	for rows.Next() {
		var cs entity.ConfigWithStock
		if err := rows.Scan(
			&cs.ProductID, &cs.SubsectorID, &cs.MinStock, &cs.MaxStock, &cs.Active, &cs.UpdatedAt,
			&cs.CurrentQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan config with stock: %w", err)
		}
		list = append(list, cs)
	}
	return list, rows.Err()
}

// ListAll lista todas las configuraciones enriquecidas con nombres.
func (r *NotificationConfigRepo) ListAll(ctx context.Context) ([]entity.ConfigWithNames, error) {
	return r.listWithNames(ctx, "")
}

// ListInconsistent lista configuraciones con máximo <= mínimo.
func (r *NotificationConfigRepo) ListInconsistent(ctx context.Context) ([]entity.ConfigWithNames, error) {
	return r.listWithNames(ctx, "WHERE nc.max_stock IS NOT NULL AND nc.max_stock <= nc.min_stock")
}

func (r *NotificationConfigRepo) listWithNames(ctx context.Context, where string) ([]entity.ConfigWithNames, error) {
	query := fmt.Sprintf(`
		SELECT nc.product_id, nc.subsector_id, nc.min_stock, nc.max_stock, nc.active, nc.updated_at,
		       p.name, b.name, md.name, ss.name, s.name
		FROM notification_configs nc
		JOIN products p ON p.id = nc.product_id
		JOIN catalog_references b ON b.id = p.brand_id
		JOIN catalog_references md ON md.id = p.model_id
		JOIN subsectors ss ON ss.id = nc.subsector_id
		JOIN sectors s ON s.id = ss.sector_id
		%s
		ORDER BY p.name, ss.name`, where)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer rows.Close()

	var list []entity.ConfigWithNames
	for rows.Next() {
		var cn entity.ConfigWithNames
		if err := rows.Scan(
			&cn.ProductID, &cn.SubsectorID, &cn.MinStock, &cn.MaxStock, &cn.Active, &cn.UpdatedAt,
			&cn.ProductName, &cn.BrandName, &cn.ModelName, &cn.SubsectorName, &cn.SectorName,
		); err != nil {
			return nil, fmt.Errorf("scan config with names: %w", err)
		}
		list = append(list, cn)
	}
	return list, rows.Err()
}

// ListCritical lista configuraciones activas cuyo stock actual está en o bajo
// el mínimo configurado.
func (r *NotificationConfigRepo) ListCritical(ctx context.Context) ([]entity.CriticalProduct, error) {
	query := `
		SELECT nc.product_id, nc.subsector_id, nc.min_stock, COALESCE(se.quantity, 0),
		       p.name, b.name, ss.name, s.name
		FROM notification_configs nc
		JOIN products p ON p.id = nc.product_id
		JOIN catalog_references b ON b.id = p.brand_id
		JOIN subsectors ss ON ss.id = nc.subsector_id
		JOIN sectors s ON s.id = ss.sector_id
		LEFT JOIN stock_entries se ON se.product_id = nc.product_id AND se.subsector_id = nc.subsector_id
		WHERE nc.active = true AND COALESCE(se.quantity, 0) <= nc.min_stock
		ORDER BY COALESCE(se.quantity, 0) ASC, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list critical products: %w", err)
	}
	defer rows.Close()

	var list []entity.CriticalProduct
	for rows.Next() {
		var cp entity.CriticalProduct
		if err := rows.Scan(
			&cp.ProductID, &cp.SubsectorID, &cp.MinStock, &cp.CurrentQuantity,
			&cp.ProductName, &cp.BrandName, &cp.SubsectorName, &cp.SectorName,
		); err != nil {
			return nil, fmt.Errorf("scan critical product: %w", err)
		}
		list = append(list, cp)
	}
	return list, rows.Err()
}
