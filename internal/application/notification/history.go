package notification

import (
	"context"

	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

// HistoryUseCase historial de notificaciones y sus agregados. El historial es
// append-only salvo el flag de lectura, que solo transiciona de no leída a
// leída.
type HistoryUseCase struct {
	recordRepo repository.NotificationRecordRepository
	cache      UnreadCounterCache
	log        *logger.Logger
}

// NewHistoryUseCase construye el caso de uso. cache puede ser nil.
func NewHistoryUseCase(recordRepo repository.NotificationRecordRepository, cache UnreadCounterCache, log *logger.Logger) *HistoryUseCase {
	return &HistoryUseCase{recordRepo: recordRepo, cache: cache, log: log}
}

// ListHistory devuelve el historial enriquecido, más reciente primero.
func (uc *HistoryUseCase) ListHistory(ctx context.Context, unreadOnly bool) ([]entity.NotificationWithNames, error) {
	return uc.recordRepo.ListHistory(ctx, unreadOnly)
}

// MarkRead marca la notificación como leída. Idempotente: marcar una ya
// leída no es un error.
func (uc *HistoryUseCase) MarkRead(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.recordRepo.MarkRead(ctx, notificationID); err != nil {
		return err
	}
	uc.invalidateCounter(ctx)
	return nil
}

// MarkAllRead marca todas las no leídas como leídas.
func (uc *HistoryUseCase) MarkAllRead(ctx context.Context) error {
	if err := uc.recordRepo.MarkAllRead(ctx); err != nil {
		return err
	}
	uc.invalidateCounter(ctx)
	return nil
}

// CountUnread total de notificaciones no leídas, con cache-aside opcional.
func (uc *HistoryUseCase) CountUnread(ctx context.Context) (int64, error) {
	if uc.cache != nil {
		if count, ok := uc.cache.GetUnread(ctx); ok {
			return count, nil
		}
	}
	count, err := uc.recordRepo.CountUnread(ctx)
	if err != nil {
		return 0, err
	}
	if uc.cache != nil {
		uc.cache.SetUnread(ctx, count)
	}
	return count, nil
}

// GetStatistics agregados del historial: total, no leídas, por tipo y de los
// últimos 7 días.
func (uc *HistoryUseCase) GetStatistics(ctx context.Context) (*entity.NotificationStats, error) {
	return uc.recordRepo.Stats(ctx)
}

// PurgeOlderThan elimina registros con más de days días; days debe ser
// positivo.
func (uc *HistoryUseCase) PurgeOlderThan(ctx context.Context, days int) error {
	if days <= 0 {
		return domain.ErrInvalidInput
	}
	removed, err := uc.recordRepo.PurgeOlderThan(ctx, days)
	if err != nil {
		return err
	}
	if removed > 0 {
		uc.log.Info().Int64("removed", removed).Int("days", days).Msg("historial de notificaciones depurado")
	}
	return nil
}

func (uc *HistoryUseCase) invalidateCounter(ctx context.Context) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
}
