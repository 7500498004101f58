package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/estoqueapp/estoque-api/internal/application/analytics"
	"github.com/estoqueapp/estoque-api/internal/application/auth"
	"github.com/estoqueapp/estoque-api/internal/application/catalog"
	"github.com/estoqueapp/estoque-api/internal/application/movement"
	"github.com/estoqueapp/estoque-api/internal/application/notification"
	"github.com/estoqueapp/estoque-api/internal/application/product"
	"github.com/estoqueapp/estoque-api/internal/application/sector"
	"github.com/estoqueapp/estoque-api/internal/application/stock"
	"github.com/estoqueapp/estoque-api/internal/infrastructure/cache"
	"github.com/estoqueapp/estoque-api/internal/infrastructure/notify"
	"github.com/estoqueapp/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/estoqueapp/estoque-api/internal/interfaces/http"
	"github.com/estoqueapp/estoque-api/pkg/config"
	"github.com/estoqueapp/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Cache opcional del contador de no leídas
	var unreadCache notification.UnreadCounterCache
	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, contador sin cache")
	} else if rdb != nil {
		defer rdb.Close()
		unreadCache = cache.NewUnreadCounter(rdb, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache Redis conectado")
	}

	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	configRepo := postgres.NewNotificationConfigRepository(pool)
	recordRepo := postgres.NewNotificationRecordRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	sectorRepo := postgres.NewSectorRepository(pool)
	referenceRepo := postgres.NewReferenceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	dispatcher := notify.NewWebhookDispatcher(cfg.Notify.WebhookURL, log)
	evaluatorUC := notification.NewEvaluatorUseCase(configRepo, recordRepo, productRepo, dispatcher, unreadCache, log)
	historyUC := notification.NewHistoryUseCase(recordRepo, unreadCache, log)
	thresholdUC := notification.NewConfigUseCase(configRepo, log)
	monitor := notification.NewMonitor(evaluatorUC, historyUC, cfg.Notify.CheckInterval, cfg.Notify.RetentionDays, log)

	ledgerUC := stock.NewLedgerUseCase(txRunner, stockRepo)
	createUC := movement.NewCreateMovementUseCase(txRunner, evaluatorUC, log)
	receiptUC := movement.NewReceiptUseCase(txRunner, movementRepo, evaluatorUC, cfg.Notify.ReverseOnReject, log)

	catalogUC := catalog.NewUseCase(referenceRepo)
	sectorUC := sector.NewUseCase(sectorRepo)
	productUC := product.NewUseCase(productRepo, catalogUC)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.ExpMinutes,
		Issuer:     cfg.JWT.Issuer,
	})

	// Monitor periódico de umbrales (escaneo + limpieza nocturna)
	monitor.Start()
	defer monitor.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Ledger:      ledgerUC,
		CreateUC:    createUC,
		ReceiptUC:   receiptUC,
		HistoryUC:   historyUC,
		ThresholdUC: thresholdUC,
		Monitor:     monitor,
		SectorUC:    sectorUC,
		ProductUC:   productUC,
		CatalogUC:   catalogUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
