package repository

import (
	"context"
	"time"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// NotificationConfigRepository puerto para los umbrales por producto+subsector.
type NotificationConfigRepository interface {
	Get(ctx context.Context, productID, subsectorID string) (*entity.NotificationConfig, error)
	Upsert(ctx context.Context, cfg *entity.NotificationConfig) error
	SetActive(ctx context.Context, productID, subsectorID string, active bool) error
	// ListActiveWithStock configuraciones activas con la cantidad actual
	// resuelta (0 si no hay registro de stock), para el escaneo por lotes.
	ListActiveWithStock(ctx context.Context) ([]entity.ConfigWithStock, error)
	ListAll(ctx context.Context) ([]entity.ConfigWithNames, error)
	// ListInconsistent configuraciones con máximo <= mínimo.
	ListInconsistent(ctx context.Context) ([]entity.ConfigWithNames, error)
	// ListCritical configuraciones activas cuyo stock está en o bajo el mínimo.
	ListCritical(ctx context.Context) ([]entity.CriticalProduct, error)
}

// NotificationRecordRepository puerto para el historial de alertas disparadas.
type NotificationRecordRepository interface {
	Create(ctx context.Context, record *entity.NotificationRecord) error
	// ExistsSameDay indica si ya hay un registro del mismo tipo para el
	// producto+subsector con fecha de creación en el día indicado,
	// independientemente de su estado de lectura.
	ExistsSameDay(ctx context.Context, productID, subsectorID, kind string, day time.Time) (bool, error)
	ListHistory(ctx context.Context, unreadOnly bool) ([]entity.NotificationWithNames, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	CountUnread(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*entity.NotificationStats, error)
	// PurgeOlderThan elimina registros con más de days días de antigüedad y
	// devuelve cuántos se eliminaron.
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
}
