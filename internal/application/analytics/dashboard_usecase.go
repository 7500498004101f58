package analytics

import (
	"context"
	"time"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

// DashboardUseCase métricas y reportes de solo lectura sobre stock y
// movimentaciones.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetMetrics métricas del panel principal; subsectorID vacío = global.
func (uc *DashboardUseCase) GetMetrics(ctx context.Context, subsectorID string) (*repository.DashboardMetrics, error) {
	return uc.analyticsRepo.GetDashboardMetrics(ctx, subsectorID)
}

// GetMovementReport movimentaciones del período con detalle de línea.
func (uc *DashboardUseCase) GetMovementReport(ctx context.Context, from, to time.Time, subsectorID string) ([]repository.MovementReportRow, error) {
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}
	return uc.analyticsRepo.GetMovementReport(ctx, from, to, subsectorID)
}

// GetReceiptStatusReport agregado de recepciones por estado en el período.
func (uc *DashboardUseCase) GetReceiptStatusReport(ctx context.Context, from, to time.Time, subsectorID string) ([]repository.ReceiptStatusRow, error) {
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}
	return uc.analyticsRepo.GetReceiptStatusReport(ctx, from, to, subsectorID)
}

// GetTopMovedProducts productos más movimentados; limit <= 0 usa 10.
func (uc *DashboardUseCase) GetTopMovedProducts(ctx context.Context, limit int, subsectorID string) ([]repository.TopMovedProductRow, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.analyticsRepo.GetTopMovedProducts(ctx, limit, subsectorID)
}

// GetSectorActivity actividad por subsector en el período.
func (uc *DashboardUseCase) GetSectorActivity(ctx context.Context, from, to time.Time) ([]repository.SectorActivityRow, error) {
	if from.After(to) {
		return nil, domain.ErrInvalidInput
	}
	return uc.analyticsRepo.GetSectorActivity(ctx, from, to)
}
