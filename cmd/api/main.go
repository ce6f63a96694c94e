package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/ledger"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/reconcile"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/infrastructure/postgres"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/infrastructure/spreadsheet"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/infrastructure/storage"
	httpRouter "github.com/Arikan-Bt/CWI-New-sub002/internal/interfaces/http"
	"github.com/Arikan-Bt/CWI-New-sub002/pkg/config"
	"github.com/Arikan-Bt/CWI-New-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	itemRepo := postgres.NewInventoryItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	catalog := postgres.NewProductCatalog(pool)
	directory := postgres.NewWarehouseDirectory(pool, cfg.Storage.FallbackWarehouseID)
	txRunner := postgres.NewTxRunner(pool)

	fileStore := storage.NewLocalFileStore(cfg.Storage.UploadDir)
	reader := spreadsheet.NewAdjustmentReader()

	led := ledger.New()
	adjustmentReconciler := reconcile.NewStockAdjustmentReconciler(txRunner, led, catalog, directory, log)
	receiptReconciler := reconcile.NewPurchaseReceiptReconciler(txRunner, led, directory, fileStore, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI at /docs when the static spec is present.
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Reconcile: httpRouter.NewReconcileHandler(adjustmentReconciler, receiptReconciler, reader),
		Inventory: httpRouter.NewInventoryHandler(itemRepo, movementRepo),
		Warehouse: httpRouter.NewWarehouseHandler(directory),
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
