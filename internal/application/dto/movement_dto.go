package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	SourceSubsectorID      string          `json:"source_subsector_id"`
	DestinationSubsectorID string          `json:"destination_subsector_id"`
	TransactionKind        string          `json:"transaction_kind"`
	ProductID              string          `json:"product_id"`
	Quantity               int64           `json:"quantity"`
	UnitExitPrice          decimal.Decimal `json:"unit_exit_price"`
	Discount               decimal.Decimal `json:"discount"`
}

// MovementItemResponse salida de una línea de movimentación.
type MovementItemResponse struct {
	ID              string          `json:"id"`
	MovementID      string          `json:"movement_id"`
	ProductID       string          `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	UnitExitPrice   decimal.Decimal `json:"unit_exit_price"`
	Discount        decimal.Decimal `json:"discount"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

// PendingReceiptResponse ítem pendiente de recepción, enriquecido para la
// pantalla de confirmación.
type PendingReceiptResponse struct {
	LineItemID          string          `json:"line_item_id"`
	MovementID          string          `json:"movement_id"`
	Timestamp           time.Time       `json:"timestamp"`
	SourceSubsectorName string          `json:"source_subsector_name"`
	TransactionKind     string          `json:"transaction_kind"`
	ProductName         string          `json:"product_name"`
	BrandName           string          `json:"brand_name"`
	Color               string          `json:"color,omitempty"`
	Flavor              string          `json:"flavor,omitempty"`
	Quantity            int64           `json:"quantity"`
	UnitExitPrice       decimal.Decimal `json:"unit_exit_price"`
	Discount            decimal.Decimal `json:"discount"`
	Status              string          `json:"status"`
}

// RejectReceiptRequest body para el rechazo de una recepción. Motivo obligatorio.
type RejectReceiptRequest struct {
	Reason string `json:"reason" validate:"required"`
}
