package notification

import (
	"context"
	"time"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

// ConfigUseCase gestión de los umbrales de notificación por
// (producto, subsector).
type ConfigUseCase struct {
	configRepo repository.NotificationConfigRepository
	log        *logger.Logger
}

// NewConfigUseCase construye el caso de uso.
func NewConfigUseCase(configRepo repository.NotificationConfigRepository, log *logger.Logger) *ConfigUseCase {
	return &ConfigUseCase{configRepo: configRepo, log: log}
}

// Configure crea o actualiza la configuración del par. MinStock es
// obligatorio y no negativo; MaxStock opcional. Una configuración con máximo
// <= mínimo se acepta pero se registra como inconsistente.
func (uc *ConfigUseCase) Configure(ctx context.Context, productID, subsectorID string, minStock int64, maxStock *int64) (*entity.NotificationConfig, error) {
	if productID == "" || subsectorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if minStock < 0 {
		return nil, domain.ErrValidation
	}
	if maxStock != nil && *maxStock < 0 {
		return nil, domain.ErrValidation
	}

	cfg := &entity.NotificationConfig{
		ProductID:   productID,
		SubsectorID: subsectorID,
		MinStock:    minStock,
		MaxStock:    maxStock,
		Active:      true,
		UpdatedAt:   time.Now(),
	}
	if cfg.Inconsistent() {
		uc.log.Warn().
			Str("product_id", productID).
			Str("subsector_id", subsectorID).
			Int64("min", minStock).
			Int64("max", *maxStock).
			Msg("configuración con máximo <= mínimo")
	}
	if err := uc.configRepo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetActive activa o desactiva las notificaciones del par.
func (uc *ConfigUseCase) SetActive(ctx context.Context, productID, subsectorID string, active bool) error {
	if productID == "" || subsectorID == "" {
		return domain.ErrInvalidInput
	}
	return uc.configRepo.SetActive(ctx, productID, subsectorID, active)
}

// Get devuelve la configuración del par, o nil si no existe.
func (uc *ConfigUseCase) Get(ctx context.Context, productID, subsectorID string) (*entity.NotificationConfig, error) {
	return uc.configRepo.Get(ctx, productID, subsectorID)
}

// ListAll configuraciones enriquecidas con nombres.
func (uc *ConfigUseCase) ListAll(ctx context.Context) ([]entity.ConfigWithNames, error) {
	return uc.configRepo.ListAll(ctx)
}

// ListInconsistent configuraciones con máximo <= mínimo.
func (uc *ConfigUseCase) ListInconsistent(ctx context.Context) ([]entity.ConfigWithNames, error) {
	return uc.configRepo.ListInconsistent(ctx)
}

// ListCritical productos con configuración activa cuyo stock actual está en o
// por debajo del mínimo, ordenados por cantidad ascendente.
func (uc *ConfigUseCase) ListCritical(ctx context.Context) ([]entity.CriticalProduct, error) {
	return uc.configRepo.ListCritical(ctx)
}
