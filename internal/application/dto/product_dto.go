package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterProductRequest body para el alta de producto. Las referencias se
// dan por nombre y se resuelven o crean en el catálogo.
type RegisterProductRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	BrandName        string          `json:"brand_name" validate:"required"`
	ModelName        string          `json:"model_name" validate:"required"`
	ManufacturerName string          `json:"manufacturer_name" validate:"required"`
	PackagingName    string          `json:"packaging_name,omitempty"`
	Color            string          `json:"color,omitempty"`
	Flavor           string          `json:"flavor,omitempty"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
}

// ProductResponse salida de un producto con su stock en el subsector
// consultado.
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	BrandName        string          `json:"brand_name,omitempty"`
	ModelName        string          `json:"model_name,omitempty"`
	ManufacturerName string          `json:"manufacturer_name,omitempty"`
	Color            string          `json:"color,omitempty"`
	Flavor           string          `json:"flavor,omitempty"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Quantity         int64           `json:"quantity"`
	CreatedAt        time.Time       `json:"created_at"`
}
