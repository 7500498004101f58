package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el panel y los reportes de
// movimentación. Siempre opera sobre el pool (nunca dentro de una tx).
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDashboardMetrics métricas agregadas del panel principal. subsectorID
// vacío calcula las métricas globales.
func (r *AnalyticsRepo) GetDashboardMetrics(ctx context.Context, subsectorID string) (*repository.DashboardMetrics, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products)                                          AS total_products,
	    (SELECT COUNT(DISTINCT se.product_id) FROM stock_entries se
	        WHERE se.quantity > 0
	          AND ($1 = '' OR se.subsector_id = $1))                             AS products_with_stock,
	    (SELECT COUNT(*) FROM notification_configs nc
	        LEFT JOIN stock_entries se2
	          ON se2.product_id = nc.product_id AND se2.subsector_id = nc.subsector_id
	        WHERE nc.active = true
	          AND COALESCE(se2.quantity, 0) <= nc.min_stock
	          AND ($1 = '' OR nc.subsector_id = $1))                             AS low_stock,
	    (SELECT COUNT(*) FROM movements m
	        WHERE m.ts >= date_trunc('day', now())
	          AND ($1 = '' OR m.source_subsector_id = $1
	               OR m.destination_subsector_id = $1))                          AS movements_today,
	    (SELECT COUNT(*) FROM movement_items mi
	        JOIN movements m2 ON m2.id = mi.movement_id
	        WHERE mi.status = 'PENDING'
	          AND ($1 = '' OR m2.destination_subsector_id = $1))                 AS pending_receipts,
	    COALESCE((SELECT SUM(se3.quantity * p.cost_price) FROM stock_entries se3
	        JOIN products p ON p.id = se3.product_id
	        WHERE $1 = '' OR se3.subsector_id = $1), 0)                          AS total_stock_value`

	var m repository.DashboardMetrics
	err := r.pool.QueryRow(ctx, query, subsectorID).Scan(
		&m.TotalProducts,
		&m.ProductsWithStock,
		&m.LowStock,
		&m.MovementsToday,
		&m.PendingReceipts,
		&m.TotalStockValue,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDashboardMetrics: %w", err)
	}
	return &m, nil
}

// GetMovementReport filas del reporte de movimentaciones por período, con
// valores de costo y de salida calculados por línea. subsectorID vacío no
// filtra por ubicación.
func (r *AnalyticsRepo) GetMovementReport(ctx context.Context, from, to time.Time, subsectorID string) ([]repository.MovementReportRow, error) {
	const query = `
	SELECT
	    m.ts,
	    ssrc.name                                                                AS source_name,
	    sdst.name                                                                AS destination_name,
	    m.transaction_kind,
	    p.name                                                                   AS product_name,
	    b.name                                                                   AS brand_name,
	    mi.quantity,
	    mi.unit_exit_price,
	    mi.status,
	    p.cost_price,
	    mi.quantity * p.cost_price                                               AS total_cost_value,
	    mi.quantity * mi.unit_exit_price - mi.discount                           AS total_exit_value
	FROM movement_items mi
	JOIN movements m    ON m.id = mi.movement_id
	JOIN subsectors ssrc ON ssrc.id = m.source_subsector_id
	JOIN subsectors sdst ON sdst.id = m.destination_subsector_id
	JOIN products p      ON p.id = mi.product_id
	JOIN catalog_references b ON b.id = p.brand_id
	WHERE m.ts BETWEEN $1 AND $2
	  AND ($3 = '' OR m.source_subsector_id = $3 OR m.destination_subsector_id = $3)
	ORDER BY m.ts DESC`

	rows, err := r.pool.Query(ctx, query, from, to, subsectorID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMovementReport: %w", err)
	}
	defer rows.Close()

	var results []repository.MovementReportRow
	for rows.Next() {
		var row repository.MovementReportRow
		if err := rows.Scan(
			&row.Timestamp,
			&row.SourceSubsectorName,
			&row.DestinationSubsector,
			&row.TransactionKind,
			&row.ProductName,
			&row.BrandName,
			&row.Quantity,
			&row.UnitExitPrice,
			&row.Status,
			&row.CostPrice,
			&row.TotalCostValue,
			&row.TotalExitValue,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetMovementReport scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetReceiptStatusReport agregado de recepciones por estado en el período,
// con porcentaje sobre el total.
func (r *AnalyticsRepo) GetReceiptStatusReport(ctx context.Context, from, to time.Time, subsectorID string) ([]repository.ReceiptStatusRow, error) {
	const query = `
	SELECT
	    mi.status,
	    COUNT(*)                                                                 AS count,
	    COALESCE(SUM(mi.quantity), 0)                                            AS total_items,
	    COALESCE(SUM(mi.quantity * mi.unit_exit_price - mi.discount), 0)         AS total_value,
	    ROUND(COUNT(*) * 100.0 / SUM(COUNT(*)) OVER (), 2)                       AS percentage
	FROM movement_items mi
	JOIN movements m ON m.id = mi.movement_id
	WHERE m.ts BETWEEN $1 AND $2
	  AND ($3 = '' OR m.destination_subsector_id = $3)
	GROUP BY mi.status
	ORDER BY count DESC`

	rows, err := r.pool.Query(ctx, query, from, to, subsectorID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetReceiptStatusReport: %w", err)
	}
	defer rows.Close()

	var results []repository.ReceiptStatusRow
	for rows.Next() {
		var row repository.ReceiptStatusRow
		if err := rows.Scan(&row.Status, &row.Count, &row.TotalItems, &row.TotalValue, &row.Percentage); err != nil {
			return nil, fmt.Errorf("analytics.GetReceiptStatusReport scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopMovedProducts productos con más movimentaciones. subsectorID vacío no
// filtra por ubicación.
func (r *AnalyticsRepo) GetTopMovedProducts(ctx context.Context, limit int, subsectorID string) ([]repository.TopMovedProductRow, error) {
	const query = `
	SELECT
	    p.name                                                                   AS product_name,
	    b.name                                                                   AS brand_name,
	    COUNT(*)                                                                 AS movements,
	    COALESCE(SUM(mi.quantity), 0)                                            AS total_quantity,
	    COALESCE(SUM(mi.quantity * mi.unit_exit_price - mi.discount), 0)         AS total_value
	FROM movement_items mi
	JOIN movements m ON m.id = mi.movement_id
	JOIN products p  ON p.id = mi.product_id
	JOIN catalog_references b ON b.id = p.brand_id
	WHERE $2 = '' OR m.source_subsector_id = $2 OR m.destination_subsector_id = $2
	GROUP BY p.id, p.name, b.name
	ORDER BY movements DESC, total_quantity DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit, subsectorID)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopMovedProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopMovedProductRow
	for rows.Next() {
		var row repository.TopMovedProductRow
		if err := rows.Scan(&row.ProductName, &row.BrandName, &row.Movements, &row.TotalQuantity, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopMovedProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSectorActivity actividad por subsector en el período: salidas (origen) y
// entradas (destino) con sus valores.
func (r *AnalyticsRepo) GetSectorActivity(ctx context.Context, from, to time.Time) ([]repository.SectorActivityRow, error) {
	const query = `
	SELECT
	    sup.name                                                                 AS super_sector_name,
	    s.name                                                                   AS sector_name,
	    ss.name                                                                  AS subsector_name,
	    COUNT(*)                                                                 AS movements,
	    COALESCE(SUM(mi.quantity) FILTER (WHERE m.source_subsector_id = ss.id), 0)      AS total_out,
	    COALESCE(SUM(mi.quantity) FILTER (WHERE m.destination_subsector_id = ss.id), 0) AS total_in,
	    COALESCE(SUM(mi.quantity * mi.unit_exit_price - mi.discount)
	        FILTER (WHERE m.source_subsector_id = ss.id), 0)                     AS value_out,
	    COALESCE(SUM(mi.quantity * mi.unit_exit_price - mi.discount)
	        FILTER (WHERE m.destination_subsector_id = ss.id), 0)                AS value_in
	FROM subsectors ss
	JOIN sectors s        ON s.id = ss.sector_id
	JOIN super_sectors sup ON sup.id = s.super_sector_id
	JOIN movements m ON m.source_subsector_id = ss.id OR m.destination_subsector_id = ss.id
	JOIN movement_items mi ON mi.movement_id = m.id
	WHERE m.ts BETWEEN $1 AND $2
	GROUP BY sup.name, s.name, ss.id, ss.name
	ORDER BY movements DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSectorActivity: %w", err)
	}
	defer rows.Close()

	var results []repository.SectorActivityRow
	for rows.Next() {
		var row repository.SectorActivityRow
		if err := rows.Scan(
			&row.SuperSectorName,
			&row.SectorName,
			&row.SubsectorName,
			&row.Movements,
			&row.TotalOut,
			&row.TotalIn,
			&row.ValueOut,
			&row.ValueIn,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetSectorActivity scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
