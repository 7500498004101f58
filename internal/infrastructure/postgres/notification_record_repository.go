package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estoqueapp/estoque-api/internal/domain/entity"
	"github.com/estoqueapp/estoque-api/internal/domain/repository"
)

var _ repository.NotificationRecordRepository = (*NotificationRecordRepo)(nil)

// NotificationRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
type NotificationRecordRepo struct {
	q Querier
}

// NewNotificationRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRecordRepository(q Querier) *NotificationRecordRepo {
	return &NotificationRecordRepo{q: q}
}

// Create persiste una entrada del historial de alertas.
func (r *NotificationRecordRepo) Create(ctx context.Context, record *entity.NotificationRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO notifications (id, product_id, subsector_id, kind, quantity, limit_value, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		record.ID, record.ProductID, record.SubsectorID, record.Kind,
		record.Quantity, record.Limit, record.Message, record.Read, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ExistsSameDay indica si ya hay un registro del mismo tipo para el
// producto+subsector creado en el día indicado, sin importar si fue leído.
func (r *NotificationRecordRepo) ExistsSameDay(ctx context.Context, productID, subsectorID, kind string, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE product_id = $1 AND subsector_id = $2 AND kind = $3
			  AND created_at >= $4 AND created_at < $4 + INTERVAL '1 day'
		)`
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var exists bool
	if err := r.q.QueryRow(ctx, query, productID, subsectorID, kind, dayStart).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists same day: %w", err)
	}
	return exists, nil
}

// ListHistory lista el historial enriquecido con nombres, más recientes
// primero. unreadOnly filtra las no leídas.
func (r *NotificationRecordRepo) ListHistory(ctx context.Context, unreadOnly bool) ([]entity.NotificationWithNames, error) {
	query := `
		SELECT n.id, n.product_id, n.subsector_id, n.kind, n.quantity, n.limit_value,
		       n.message, n.read, n.created_at,
		       p.name, b.name, ss.name, s.name
		FROM notifications n
		JOIN products p ON p.id = n.product_id
		JOIN catalog_references b ON b.id = p.brand_id
		JOIN subsectors ss ON ss.id = n.subsector_id
		JOIN sectors s ON s.id = ss.sector_id`
	if unreadOnly {
		query += "\n\t\tWHERE n.read = false"
	}
	query += "\n\t\tORDER BY n.created_at DESC"

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list notification history: %w", err)
	}
	defer rows.Close()

	var list []entity.NotificationWithNames
	for rows.Next() {
		var n entity.NotificationWithNames
		if err := rows.Scan(
			&n.ID, &n.ProductID, &n.SubsectorID, &n.Kind, &n.Quantity, &n.Limit,
			&n.Message, &n.Read, &n.CreatedAt,
			&n.ProductName, &n.BrandName, &n.SubsectorName, &n.SectorName,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead marca una notificación como leída. Idempotente: marcar una ya
// leída no es error.
func (r *NotificationRecordRepo) MarkRead(ctx context.Context, id string) error {
	query := `UPDATE notifications SET read = true WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marca todas las notificaciones no leídas como leídas.
func (r *NotificationRecordRepo) MarkAllRead(ctx context.Context) error {
	query := `UPDATE notifications SET read = true WHERE read = false`
	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// CountUnread cuenta las notificaciones no leídas.
func (r *NotificationRecordRepo) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE read = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

// Stats devuelve agregados del historial: total, no leídas, por tipo y de los
// últimos 7 días.
func (r *NotificationRecordRepo) Stats(ctx context.Context) (*entity.NotificationStats, error) {
	stats := &entity.NotificationStats{ByKind: make(map[string]int64)}

	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE read = false),
		       count(*) FILTER (WHERE created_at >= now() - INTERVAL '7 days')
		FROM notifications`
	if err := r.q.QueryRow(ctx, query).Scan(&stats.Total, &stats.Unread, &stats.Last7Days); err != nil {
		return nil, fmt.Errorf("notification stats: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT kind, count(*) FROM notifications GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("notification stats by kind: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan stats by kind: %w", err)
		}
		stats.ByKind[kind] = count
	}
	return stats, rows.Err()
}

// PurgeOlderThan elimina registros con más de days días de antigüedad y
// devuelve cuántos se eliminaron.
func (r *NotificationRecordRepo) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	query := `DELETE FROM notifications WHERE created_at < now() - make_interval(days => $1)`
	tag, err := r.q.Exec(ctx, query, days)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
