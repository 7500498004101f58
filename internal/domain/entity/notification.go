package entity

import "time"

// Tipos de notificación de stock.
const (
	KindStockZero       = "STOCK_ZERO"
	KindStockLow        = "STOCK_LOW"
	KindStockHigh       = "STOCK_HIGH"
	KindProductExpiring = "PRODUCT_EXPIRING"
)

// NotificationConfig umbrales configurados por (producto, subsector).
// MinStock es obligatorio; MaxStock opcional (nil = sin umbral superior).
type NotificationConfig struct {
	ProductID   string
	SubsectorID string
	MinStock    int64
	MaxStock    *int64
	Active      bool
	UpdatedAt   time.Time
}

// Inconsistent indica una configuración con máximo menor o igual al mínimo.
func (c NotificationConfig) Inconsistent() bool {
	return c.MaxStock != nil && *c.MaxStock <= c.MinStock
}

// NotificationRecord entrada del historial de alertas. Append-only salvo el
// flag Read, que solo transiciona de false a true.
type NotificationRecord struct {
	ID          string
	ProductID   string
	SubsectorID string
	Kind        string
	Quantity    int64
	Limit       int64
	Message     string
	Read        bool
	CreatedAt   time.Time
}

// NotificationWithNames registro enriquecido con nombres para el historial.
type NotificationWithNames struct {
	NotificationRecord
	ProductName   string
	BrandName     string
	SubsectorName string
	SectorName    string
}

// NotificationStats agregados del historial de notificaciones.
type NotificationStats struct {
	Total     int64
	Unread    int64
	ByKind    map[string]int64
	Last7Days int64
}

// ConfigWithStock configuración activa junto con la cantidad actual
// (0 si no existe registro de stock), para el escaneo por lotes.
type ConfigWithStock struct {
	NotificationConfig
	CurrentQuantity int64
}

// ConfigWithNames configuración enriquecida para listados.
type ConfigWithNames struct {
	NotificationConfig
	ProductName   string
	BrandName     string
	ModelName     string
	SubsectorName string
	SectorName    string
}

// CriticalProduct producto con configuración activa cuyo stock actual está en
// o por debajo del mínimo configurado.
type CriticalProduct struct {
	ProductID       string
	SubsectorID     string
	MinStock        int64
	CurrentQuantity int64
	ProductName     string
	BrandName       string
	SubsectorName   string
	SectorName      string
}
