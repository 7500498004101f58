package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/application/movement"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// MovementHandler creación de movimentaciones y confirmación de recepción
// (protegido).
type MovementHandler struct {
	createUC  *movement.CreateMovementUseCase
	receiptUC *movement.ReceiptUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(createUC *movement.CreateMovementUseCase, receiptUC *movement.ReceiptUseCase) *MovementHandler {
	return &MovementHandler{createUC: createUC, receiptUC: receiptUC}
}

// Create crea una movimentación de un producto entre dos subsectores. El ítem
// nace PENDING y el stock se mueve de inmediato (débito origen, crédito
// destino) en la misma transacción.
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.createUC.CreateMovement(c.Context(), movement.CreateMovementInput{
		SourceSubsectorID:      in.SourceSubsectorID,
		DestinationSubsectorID: in.DestinationSubsectorID,
		TransactionKind:        in.TransactionKind,
		ProductID:              in.ProductID,
		Quantity:               in.Quantity,
		UnitExitPrice:          in.UnitExitPrice,
		Discount:               in.Discount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de movimentación inválidos"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en el subsector de origen"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementItemResponse(item))
}

// ListPending lista los ítems pendientes de recepción del subsector del
// operador (o del indicado por query, para admin).
func (h *MovementHandler) ListPending(c *fiber.Ctx) error {
	subsectorID := c.Query("subsector_id", GetSubsectorID(c))
	if subsectorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "subsector_id requerido"})
	}
	list, err := h.receiptUC.ListPendingForLocation(c.Context(), subsectorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PendingReceiptResponse, 0, len(list))
	for _, pr := range list {
		out = append(out, dto.PendingReceiptResponse{
			LineItemID:          pr.LineItemID,
			MovementID:          pr.MovementID,
			Timestamp:           pr.Timestamp,
			SourceSubsectorName: pr.SourceSubsectorName,
			TransactionKind:     pr.TransactionKind,
			ProductName:         pr.ProductName,
			BrandName:           pr.BrandName,
			Color:               pr.Color,
			Flavor:              pr.Flavor,
			Quantity:            pr.Quantity,
			UnitExitPrice:       pr.UnitExitPrice,
			Discount:            pr.Discount,
			Status:              pr.Status,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "receipts": out})
}

// Confirm confirma la recepción de un ítem pendiente.
func (h *MovementHandler) Confirm(c *fiber.Ctx) error {
	err := h.receiptUC.ConfirmReceipt(c.Context(), c.Params("itemId"))
	if err != nil {
		return h.receiptError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recepción confirmada"})
}

// Reject rechaza la recepción de un ítem pendiente. Motivo obligatorio.
func (h *MovementHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.receiptUC.RejectReceipt(c.Context(), c.Params("itemId"), in.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el motivo del rechazo es obligatorio"})
		}
		return h.receiptError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recepción rechazada"})
}

func (h *MovementHandler) receiptError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "el ítem ya fue confirmado o rechazado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toMovementItemResponse(item *entity.MovementLineItem) dto.MovementItemResponse {
	return dto.MovementItemResponse{
		ID:              item.ID,
		MovementID:      item.MovementID,
		ProductID:       item.ProductID,
		Quantity:        item.Quantity,
		UnitExitPrice:   item.UnitExitPrice,
		Discount:        item.Discount,
		Status:          item.Status,
		RejectionReason: item.RejectionReason,
	}
}
