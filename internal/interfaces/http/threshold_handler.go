package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// ThresholdHandler configuración de umbrales de notificación (protegido).
type ThresholdHandler struct {
	uc *notification.ConfigUseCase
}

// NewThresholdHandler construye el handler.
func NewThresholdHandler(uc *notification.ConfigUseCase) *ThresholdHandler {
	return &ThresholdHandler{uc: uc}
}

// Configure crea o reemplaza los umbrales de un producto+subsector. La
// configuración queda activa.
func (h *ThresholdHandler) Configure(c *fiber.Ctx) error {
	var in dto.ConfigureThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.SubsectorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y subsector_id son requeridos"})
	}
	cfg, err := h.uc.Configure(c.Context(), in.ProductID, in.SubsectorID, in.MinStock, in.MaxStock)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "los umbrales no pueden ser negativos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toThresholdResponse(*cfg))
}

// SetActive activa o desactiva una configuración existente.
func (h *ThresholdHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetActive(c.Context(), in.ProductID, in.SubsectorID, in.Active); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "configuración actualizada"})
}

// Get obtiene la configuración de un producto+subsector.
func (h *ThresholdHandler) Get(c *fiber.Ctx) error {
	productID := c.Params("productId")
	subsectorID := c.Query("subsector_id", GetSubsectorID(c))
	cfg, err := h.uc.Get(c.Context(), productID, subsectorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if cfg == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin configuración para el producto en ese subsector"})
	}
	return c.JSON(toThresholdResponse(*cfg))
}

// List lista todas las configuraciones enriquecidas con nombres.
func (h *ThresholdHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "configs": list})
}

// ListInconsistent lista configuraciones con máximo <= mínimo (solo alertarán
// por stock bajo).
func (h *ThresholdHandler) ListInconsistent(c *fiber.Ctx) error {
	list, err := h.uc.ListInconsistent(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "configs": list})
}

// ListCritical lista productos con stock en o bajo su mínimo configurado.
func (h *ThresholdHandler) ListCritical(c *fiber.Ctx) error {
	list, err := h.uc.ListCritical(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}

func toThresholdResponse(cfg entity.NotificationConfig) dto.ThresholdConfigResponse {
	return dto.ThresholdConfigResponse{
		ProductID:   cfg.ProductID,
		SubsectorID: cfg.SubsectorID,
		MinStock:    cfg.MinStock,
		MaxStock:    cfg.MaxStock,
		Active:      cfg.Active,
		UpdatedAt:   cfg.UpdatedAt,
	}
}
