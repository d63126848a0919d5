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
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/Abasto-api/docs"
	"github.com/jhoicas/Abasto-api/internal/application/alerts"
	"github.com/jhoicas/Abasto-api/internal/application/catalog"
	"github.com/jhoicas/Abasto-api/internal/application/inventory"
	"github.com/jhoicas/Abasto-api/internal/application/usecase"
	"github.com/jhoicas/Abasto-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Abasto-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Abasto-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Abasto-api/internal/infrastructure/rediscache"
	httpRouter "github.com/jhoicas/Abasto-api/internal/interfaces/http"
	"github.com/jhoicas/Abasto-api/pkg/config"
	"github.com/jhoicas/Abasto-api/pkg/logger"
)

// @title        Abasto API
// @version      1.0
// @description  Inventario multi-bodega con alertas de reposición.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.App.Name, cfg.App.LogLevel)
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	typeRepo := postgres.NewProductTypeRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	changeRepo := postgres.NewInventoryChangeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de alertas: solo si REDIS_ADDR está configurado.
	// Sin Redis los casos de uso reciben nil y consultan siempre la base.
	var alertCache alerts.AlertCache
	var cacheInvalidator inventory.AlertCacheInvalidator
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		cache := rediscache.NewAlertCache(rdb)
		alertCache = cache
		cacheInvalidator = cache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de alertas habilitada")
	}

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, companyRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	typeUC := usecase.NewProductTypeUseCase(typeRepo)
	productUC := usecase.NewProductUseCase(productRepo)

	createProductUC := catalog.NewCreateProductUseCase(txRunner, productRepo)
	adjustmentUC := inventory.NewRegisterAdjustmentUseCase(txRunner, warehouseRepo, cacheInvalidator)
	invQueryUC := inventory.NewQueryUseCase(invRepo, changeRepo, warehouseRepo)

	lowStockUC := alerts.NewLowStockUseCase(companyRepo, invRepo, changeRepo, alertCache, alerts.Config{
		WindowDays:  cfg.Alerts.WindowDays,
		SaleReasons: cfg.Alerts.SaleReasons,
		CacheTTL:    cfg.Alerts.CacheTTL(),
	})

	// Entregables de reposición: PDF para compras y XML para ERPs
	reportUC := alerts.NewReportUseCase(
		lowStockUC, companyRepo,
		infrapdf.NewMarotoReportGenerator(), export.NewXMLExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Abasto API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		WarehouseUC:   warehouseUC,
		SupplierUC:    supplierUC,
		ProductTypeUC: typeUC,
		ProductUC:     productUC,
		CreateProduct: createProductUC,
		Adjustment:    adjustmentUC,
		InvQuery:      invQueryUC,
		LowStock:      lowStockUC,
		Report:        reportUC,
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
