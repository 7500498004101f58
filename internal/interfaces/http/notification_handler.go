package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// NotificationHandler historial de alertas y control del monitor (protegido).
type NotificationHandler struct {
	history *notification.HistoryUseCase
	monitor *notification.Monitor
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(history *notification.HistoryUseCase, monitor *notification.Monitor) *NotificationHandler {
	return &NotificationHandler{history: history, monitor: monitor}
}

// ListHistory lista el historial de notificaciones, más recientes primero.
// ?unread=true filtra las no leídas.
func (h *NotificationHandler) ListHistory(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread")
	list, err := h.history.ListHistory(c.Context(), unreadOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return c.JSON(fiber.Map{"total": len(out), "notifications": out})
}

// MarkRead marca una notificación como leída (idempotente).
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.history.MarkRead(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "notificación marcada como leída"})
}

// MarkAllRead marca todas las notificaciones no leídas como leídas.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.history.MarkAllRead(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "todas las notificaciones marcadas como leídas"})
}

// CountUnread devuelve el contador de no leídas (para el badge de la app).
func (h *NotificationHandler) CountUnread(c *fiber.Ctx) error {
	count, err := h.history.CountUnread(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"unread": count})
}

// GetStats devuelve agregados del historial.
func (h *NotificationHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.history.GetStatistics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NotificationStatsResponse{
		Total:     stats.Total,
		Unread:    stats.Unread,
		ByKind:    stats.ByKind,
		Last7Days: stats.Last7Days,
	})
}

// ForceCheck dispara manualmente un escaneo completo de umbrales.
func (h *NotificationHandler) ForceCheck(c *fiber.Ctx) error {
	processed, err := h.monitor.ForceCheck(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "escaneo ejecutado", "processed": processed})
}

// MonitorStatus indica si el monitor periódico está corriendo.
func (h *NotificationHandler) MonitorStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"running": h.monitor.Running()})
}

func toNotificationResponse(n entity.NotificationWithNames) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:            n.ID,
		ProductID:     n.ProductID,
		SubsectorID:   n.SubsectorID,
		Kind:          n.Kind,
		Quantity:      n.Quantity,
		Limit:         n.Limit,
		Message:       n.Message,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
		ProductName:   n.ProductName,
		BrandName:     n.BrandName,
		SubsectorName: n.SubsectorName,
		SectorName:    n.SectorName,
	}
}
