package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/estoqueapp/estoque-api/internal/application/dto"
	"github.com/estoqueapp/estoque-api/internal/application/stock"
	"github.com/estoqueapp/estoque-api/internal/domain"
	"github.com/estoqueapp/estoque-api/internal/domain/entity"
)

// StockHandler consultas de stock y ajustes manuales (protegido).
type StockHandler struct {
	ledger *stock.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// GetQuantity devuelve la cantidad actual de un producto en un subsector.
// Sin registro de stock responde cantidad cero.
func (h *StockHandler) GetQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	subsectorID := c.Query("subsector_id", GetSubsectorID(c))
	if productID == "" || subsectorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y subsector_id son requeridos"})
	}
	qty, err := h.ledger.GetQuantity(c.Context(), productID, subsectorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"product_id":   productID,
		"subsector_id": subsectorID,
		"quantity":     qty,
	})
}

// CheckAvailability verifica si hay al menos `quantity` unidades disponibles.
func (h *StockHandler) CheckAvailability(c *fiber.Ctx) error {
	productID := c.Params("productId")
	subsectorID := c.Query("subsector_id", GetSubsectorID(c))
	requested := int64(c.QueryInt("quantity"))
	ok, err := h.ledger.HasSufficientStock(c.Context(), productID, subsectorID, requested)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un entero positivo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"product_id":   productID,
		"subsector_id": subsectorID,
		"quantity":     requested,
		"available":    ok,
	})
}

type adjustStockRequest struct {
	ProductID   string `json:"product_id"`
	SubsectorID string `json:"subsector_id"`
	Quantity    int64  `json:"quantity"`
	Direction   string `json:"direction"` // CREDIT | DEBIT
}

// Adjust aplica un ajuste manual de stock. La ruta se protege con
// RequireRole("admin").
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in adjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	direction := entity.AdjustDirection(in.Direction)
	if direction != entity.AdjustCredit && direction != entity.AdjustDebit {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser CREDIT o DEBIT"})
	}
	newQty, err := h.ledger.AdjustStock(c.Context(), in.ProductID, in.SubsectorID, in.Quantity, direction)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un entero positivo"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"product_id":   in.ProductID,
		"subsector_id": in.SubsectorID,
		"quantity":     newQty,
	})
}
