package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoqueapp/estoque-api/internal/application/analytics"
	"github.com/estoqueapp/estoque-api/internal/application/auth"
	"github.com/estoqueapp/estoque-api/internal/application/catalog"
	"github.com/estoqueapp/estoque-api/internal/application/movement"
	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/internal/application/product"
	"github.com/estoqueapp/estoque-api/internal/application/sector"
	"github.com/estoqueapp/estoque-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Ledger       *stock.LedgerUseCase
	CreateUC     *movement.CreateMovementUseCase
	ReceiptUC    *movement.ReceiptUseCase
	HistoryUC    *notification.HistoryUseCase
	ThresholdUC  *notification.ConfigUseCase
	Monitor      *notification.Monitor
	SectorUC     *sector.UseCase
	ProductUC    *product.UseCase
	CatalogUC    *catalog.UseCase
	DashboardUC  *analytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger)
	stockGroup.Get("/:productId", stockHandler.GetQuantity)
	stockGroup.Get("/:productId/availability", stockHandler.CheckAvailability)
	stockGroup.Post("/adjust", RequireRole("admin"), stockHandler.Adjust)

	// Movements y recepciones (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.CreateUC, deps.ReceiptUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/pending", movementHandler.ListPending)
	movements.Post("/items/:itemId/confirm", movementHandler.Confirm)
	movements.Post("/items/:itemId/reject", movementHandler.Reject)

	// Notificaciones (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.HistoryUC, deps.Monitor)
	notifications.Get("/", notificationHandler.ListHistory)
	notifications.Get("/unread-count", notificationHandler.CountUnread)
	notifications.Get("/stats", notificationHandler.GetStats)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	notifications.Post("/check", notificationHandler.ForceCheck)
	notifications.Get("/monitor", notificationHandler.MonitorStatus)

	// Umbrales de notificación (protegido)
	thresholds := protected.Group("/thresholds")
	thresholdHandler := NewThresholdHandler(deps.ThresholdUC)
	thresholds.Post("/", thresholdHandler.Configure)
	thresholds.Put("/active", thresholdHandler.SetActive)
	thresholds.Get("/", thresholdHandler.List)
	thresholds.Get("/inconsistent", thresholdHandler.ListInconsistent)
	thresholds.Get("/critical", thresholdHandler.ListCritical)
	thresholds.Get("/:productId", thresholdHandler.Get)

	// Jerarquía de sectores (protegido)
	sectors := protected.Group("/sectors")
	sectorHandler := NewSectorHandler(deps.SectorUC)
	sectors.Post("/super", sectorHandler.CreateSuperSector)
	sectors.Post("/", sectorHandler.CreateSector)
	sectors.Post("/sub", sectorHandler.CreateSubsector)
	sectors.Get("/super", sectorHandler.ListSuperSectors)
	sectors.Get("/", sectorHandler.ListSectors)
	sectors.Get("/sub", sectorHandler.ListSubsectors)
	sectors.Get("/sub/:id", sectorHandler.GetSubsector)

	// Products y catálogo (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CatalogUC)
	products.Post("/", productHandler.Register)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	protected.Get("/references/:kind", productHandler.ListReferences)

	// Dashboard y reportes (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/metrics", dashboardHandler.GetMetrics)
	dashboard.Get("/reports/movements", dashboardHandler.GetMovementReport)
	dashboard.Get("/reports/receipts", dashboardHandler.GetReceiptStatusReport)
	dashboard.Get("/reports/top-products", dashboardHandler.GetTopMovedProducts)
	dashboard.Get("/reports/sector-activity", dashboardHandler.GetSectorActivity)
}
