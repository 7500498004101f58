package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

// EvaluatorUseCase clasifica la cantidad actual de un producto contra sus
// umbrales configurados y registra a lo sumo una alerta por tipo y por día
// calendario para cada par (producto, subsector).
type EvaluatorUseCase struct {
	configRepo  repository.NotificationConfigRepository
	recordRepo  repository.NotificationRecordRepository
	productRepo repository.ProductRepository
	dispatcher  Dispatcher
	cache       UnreadCounterCache
	log         *logger.Logger
}

// NewEvaluatorUseCase construye el evaluador. cache puede ser nil.
func NewEvaluatorUseCase(
	configRepo repository.NotificationConfigRepository,
	recordRepo repository.NotificationRecordRepository,
	productRepo repository.ProductRepository,
	dispatcher Dispatcher,
	cache UnreadCounterCache,
	log *logger.Logger,
) *EvaluatorUseCase {
	return &EvaluatorUseCase{
		configRepo:  configRepo,
		recordRepo:  recordRepo,
		productRepo: productRepo,
		dispatcher:  dispatcher,
		cache:       cache,
		log:         log,
	}
}

// Evaluate compara currentQuantity contra la configuración activa del par
// (producto, subsector). Precedencia de clasificación: cero, luego bajo,
// luego alto. Devuelve el registro creado, o nil si no hay configuración
// activa, la cantidad no cruza umbral o ya existe una alerta del mismo tipo
// hoy (deduplicación diaria, independiente del estado de lectura).
func (uc *EvaluatorUseCase) Evaluate(ctx context.Context, productID, subsectorID string, currentQuantity int64) (*entity.NotificationRecord, error) {
	cfg, err := uc.configRepo.Get(ctx, productID, subsectorID)
	if err != nil {
		return nil, err
	}
	if cfg == nil || !cfg.Active {
		return nil, nil
	}

	kind, limit, message := classify(cfg, currentQuantity)
	if kind == "" {
		return nil, nil
	}

	exists, err := uc.recordRepo.ExistsSameDay(ctx, productID, subsectorID, kind, time.Now())
	if err != nil {
		return nil, err
	}
	if exists {
		uc.log.Debug().
			Str("product_id", productID).
			Str("subsector_id", subsectorID).
			Str("kind", kind).
			Msg("alerta del mismo tipo ya registrada hoy, omitida")
		return nil, nil
	}

	record := &entity.NotificationRecord{
		ID:          uuid.New().String(),
		ProductID:   productID,
		SubsectorID: subsectorID,
		Kind:        kind,
		Quantity:    currentQuantity,
		Limit:       limit,
		Message:     message,
		Read:        false,
		CreatedAt:   time.Now(),
	}
	if err := uc.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}

	uc.dispatchAlert(ctx, record)
	return record, nil
}

// EvaluateAll recorre todas las configuraciones activas resolviendo la
// cantidad actual (0 si no hay registro de stock) y evalúa cada una. Un fallo
// individual no detiene el escaneo; devuelve cuántas configuraciones se
// procesaron.
func (uc *EvaluatorUseCase) EvaluateAll(ctx context.Context) (int, error) {
	configs, err := uc.configRepo.ListActiveWithStock(ctx)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, c := range configs {
		if _, err := uc.Evaluate(ctx, c.ProductID, c.SubsectorID, c.CurrentQuantity); err != nil {
			uc.log.Warn().Err(err).
				Str("product_id", c.ProductID).
				Str("subsector_id", c.SubsectorID).
				Msg("evaluación de configuración fallida, escaneo continúa")
			continue
		}
		processed++
	}

	uc.log.Info().Int("processed", processed).Int("total", len(configs)).Msg("escaneo de umbrales completado")
	return processed, nil
}

// classify aplica la precedencia de clasificación y arma el mensaje legible.
// Primer match gana: cero > bajo > alto.
func classify(cfg *entity.NotificationConfig, qty int64) (kind string, limit int64, message string) {
	switch {
	case qty == 0:
		return entity.KindStockZero, cfg.MinStock, "¡Producto agotado en el stock!"
	case qty <= cfg.MinStock:
		return entity.KindStockLow, cfg.MinStock,
			fmt.Sprintf("Stock bajo: cantidad actual %d, mínimo %d", qty, cfg.MinStock)
	case cfg.MaxStock != nil && qty >= *cfg.MaxStock:
		return entity.KindStockHigh, *cfg.MaxStock,
			fmt.Sprintf("Stock alto: cantidad actual %d, máximo %d", qty, *cfg.MaxStock)
	}
	return "", 0, ""
}

// dispatchAlert envía la alerta local con los nombres desnormalizados del
// producto. Mejor esfuerzo: cualquier fallo se registra y no revierte el
// histórico.
func (uc *EvaluatorUseCase) dispatchAlert(ctx context.Context, record *entity.NotificationRecord) {
	if uc.dispatcher == nil {
		return
	}
	info, err := uc.productRepo.GetInfo(ctx, record.ProductID, record.SubsectorID)
	if err != nil || info == nil {
		uc.log.Warn().Err(err).Str("product_id", record.ProductID).Msg("datos de producto no disponibles para la alerta local")
		return
	}
	body := fmt.Sprintf("%s - %s\n%s > %s\n%s",
		info.ProductName, info.BrandName, info.SectorName, info.SubsectorName, record.Message)
	uc.dispatcher.Send(ctx, titleForKind(record.Kind), body, map[string]string{
		"product_id":   record.ProductID,
		"subsector_id": record.SubsectorID,
		"kind":         record.Kind,
		"quantity":     fmt.Sprintf("%d", record.Quantity),
	})
}
