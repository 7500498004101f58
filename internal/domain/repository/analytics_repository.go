package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardMetrics métricas agregadas para el panel principal.
type DashboardMetrics struct {
	TotalProducts     int64
	ProductsWithStock int64
	LowStock          int64
	MovementsToday    int64
	PendingReceipts   int64
	TotalStockValue   decimal.Decimal
}

// MovementReportRow fila del reporte de movimentaciones por período.
type MovementReportRow struct {
	Timestamp            time.Time
	SourceSubsectorName  string
	DestinationSubsector string
	TransactionKind      string
	ProductName          string
	BrandName            string
	Quantity             int64
	UnitExitPrice        decimal.Decimal
	Status               string
	CostPrice            decimal.Decimal
	TotalCostValue       decimal.Decimal
	TotalExitValue       decimal.Decimal
}

// ReceiptStatusRow agregado de recepciones por estado en un período.
type ReceiptStatusRow struct {
	Status     string
	Count      int64
	TotalItems int64
	TotalValue decimal.Decimal
	Percentage decimal.Decimal
}

// TopMovedProductRow producto más movimentado.
type TopMovedProductRow struct {
	ProductName   string
	BrandName     string
	Movements     int64
	TotalQuantity int64
	TotalValue    decimal.Decimal
}

// SectorActivityRow actividad de un subsector en un período.
type SectorActivityRow struct {
	SuperSectorName string
	SectorName      string
	SubsectorName   string
	Movements       int64
	TotalOut        int64
	TotalIn         int64
	ValueOut        decimal.Decimal
	ValueIn         decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para métricas y reportes.
type AnalyticsRepository interface {
	// GetDashboardMetrics métricas del panel; subsectorID vacío = global.
	GetDashboardMetrics(ctx context.Context, subsectorID string) (*DashboardMetrics, error)
	GetMovementReport(ctx context.Context, from, to time.Time, subsectorID string) ([]MovementReportRow, error)
	GetReceiptStatusReport(ctx context.Context, from, to time.Time, subsectorID string) ([]ReceiptStatusRow, error)
	GetTopMovedProducts(ctx context.Context, limit int, subsectorID string) ([]TopMovedProductRow, error)
	GetSectorActivity(ctx context.Context, from, to time.Time) ([]SectorActivityRow, error)
}
