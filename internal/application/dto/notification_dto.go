package dto

import "time"

// ConfigureThresholdRequest body para configurar umbrales de un
// producto+subsector. MaxStock nulo = sin umbral superior.
type ConfigureThresholdRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	SubsectorID string `json:"subsector_id" validate:"required,uuid"`
	MinStock    int64  `json:"min_stock" validate:"min=0"`
	MaxStock    *int64 `json:"max_stock,omitempty"`
}

// SetActiveRequest body para activar/desactivar una configuración.
type SetActiveRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	SubsectorID string `json:"subsector_id" validate:"required,uuid"`
	Active      bool   `json:"active"`
}

// ThresholdConfigResponse salida de una configuración de umbrales.
type ThresholdConfigResponse struct {
	ProductID   string    `json:"product_id"`
	SubsectorID string    `json:"subsector_id"`
	MinStock    int64     `json:"min_stock"`
	MaxStock    *int64    `json:"max_stock,omitempty"`
	Active      bool      `json:"active"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NotificationResponse entrada del historial de alertas.
type NotificationResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	SubsectorID   string    `json:"subsector_id"`
	Kind          string    `json:"kind"`
	Quantity      int64     `json:"quantity"`
	Limit         int64     `json:"limit"`
	Message       string    `json:"message"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
	ProductName   string    `json:"product_name"`
	BrandName     string    `json:"brand_name"`
	SubsectorName string    `json:"subsector_name"`
	SectorName    string    `json:"sector_name"`
}

// NotificationStatsResponse agregados del historial.
type NotificationStatsResponse struct {
	Total     int64            `json:"total"`
	Unread    int64            `json:"unread"`
	ByKind    map[string]int64 `json:"by_kind"`
	Last7Days int64            `json:"last_7_days"`
}
