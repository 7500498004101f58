package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de una movimentación (tabla de referencia enumerada).
const (
	TransactionDonation = "DONATION"
	TransactionLoss     = "LOSS"
	TransactionTransfer = "TRANSFER"
	TransactionEntry    = "ENTRY"
	TransactionExit     = "EXIT"
)

// IsValidTransactionKind valida el tipo de transacción.
func IsValidTransactionKind(kind string) bool {
	switch kind {
	case TransactionDonation, TransactionLoss, TransactionTransfer, TransactionEntry, TransactionExit:
		return true
	}
	return false
}

// Estados de un ítem de movimentación. PENDING es el inicial; CONFIRMED y
// REJECTED son terminales (REJECTED exige motivo no vacío).
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusRejected  = "REJECTED"
)

// Movement cabecera de una transferencia entre dos subsectores.
type Movement struct {
	ID                     string
	Timestamp              time.Time
	SourceSubsectorID      string
	DestinationSubsectorID string
	TransactionKind        string
}

// MovementLineItem línea de producto dentro de una movimentación, con su
// propio estado de recepción.
type MovementLineItem struct {
	ID              string
	MovementID      string
	ProductID       string
	Quantity        int64
	UnitExitPrice   decimal.Decimal
	Discount        decimal.Decimal
	Status          string
	RejectionReason string
}

// PendingReceipt ítem pendiente enriquecido con metadatos de producto y
// movimentación para la pantalla de confirmación de recepción.
type PendingReceipt struct {
	LineItemID          string
	MovementID          string
	Timestamp           time.Time
	SourceSubsectorName string
	TransactionKind     string
	ProductName         string
	BrandName           string
	Color               string
	Flavor              string
	Quantity            int64
	UnitExitPrice       decimal.Decimal
	Discount            decimal.Decimal
	Status              string
}
