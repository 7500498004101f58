package entity

import "time"

// StockEntry representa la cantidad actual de un producto en un subsector.
// Clave compuesta (ProductID, SubsectorID); la cantidad nunca es negativa.
// Se crea de forma perezosa con el primer crédito y no se elimina: cantidad
// cero es un estado terminal válido, no ausencia.
type StockEntry struct {
	ProductID   string
	SubsectorID string
	Quantity    int64
	UpdatedAt   time.Time
}

// AdjustDirection sentido de un ajuste de stock.
type AdjustDirection string

const (
	AdjustCredit AdjustDirection = "CREDIT"
	AdjustDebit  AdjustDirection = "DEBIT"
)
