package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una variante de producto registrada (marca, modelo,
// fabricante, color/sabor y embalaje). Inmutable salvo los precios, que se
// gestionan fuera del motor de inventario.
type Product struct {
	ID             string
	Name           string
	BrandID        string
	ModelID        string
	ManufacturerID string
	PackagingID    string
	Color          string
	Flavor         string
	CostPrice      decimal.Decimal
	SalePrice      decimal.Decimal
	CreatedAt      time.Time
}

// ProductInfo datos desnormalizados de un producto en un subsector, usados
// para enriquecer listados y para generar mensajes de notificación.
type ProductInfo struct {
	ProductID     string
	ProductName   string
	BrandName     string
	ModelName     string
	SubsectorName string
	SectorName    string
}

// ProductWithStock producto con su cantidad en un subsector (0 si no hay
// registro de stock).
type ProductWithStock struct {
	Product
	BrandName        string
	ModelName        string
	ManufacturerName string
	Quantity         int64
}
