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
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/chcomputer/almacen-api/internal/application/analytics"
	"github.com/chcomputer/almacen-api/internal/application/auth"
	appexport "github.com/chcomputer/almacen-api/internal/application/export"
	"github.com/chcomputer/almacen-api/internal/application/inventory"
	"github.com/chcomputer/almacen-api/internal/application/usecase"
	"github.com/chcomputer/almacen-api/internal/infrastructure/cache"
	infraexcel "github.com/chcomputer/almacen-api/internal/infrastructure/excel"
	infrapdf "github.com/chcomputer/almacen-api/internal/infrastructure/pdf"
	"github.com/chcomputer/almacen-api/internal/infrastructure/postgres"
	"github.com/chcomputer/almacen-api/internal/infrastructure/tasks"
	httpRouter "github.com/chcomputer/almacen-api/internal/interfaces/http"
	"github.com/chcomputer/almacen-api/pkg/config"
	"github.com/chcomputer/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	modelRepo := postgres.NewModelRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	notifier := tasks.NewClient(redisOpt)
	defer notifier.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	statsCache := cache.NewRedisCache(redisClient)

	applyBatchUC := inventory.NewApplyBatchUseCase(txRunner, productRepo, userRepo, notifier)
	movQueriesUC := inventory.NewMovementQueryUseCase(movementRepo, productRepo, userRepo)
	productUC := usecase.NewProductUseCase(productRepo, brandRepo, modelRepo, supplierRepo)
	brandUC := usecase.NewBrandUseCase(brandRepo)
	modelUC := usecase.NewModelUseCase(modelRepo, brandRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, statsCache)
	exportUC := appexport.NewUseCase(
		productRepo, movementRepo,
		infrapdf.NewMarotoReportGenerator(),
		infraexcel.NewExcelizeReportGenerator(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // los exports PDF/Excel pueden tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén CH Computer API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		BrandUC:     brandUC,
		ModelUC:     modelUC,
		SupplierUC:  supplierUC,
		LocationUC:  locationUC,
		UserUC:      userUC,
		ApplyBatch:  applyBatchUC,
		MovQueries:  movQueriesUC,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
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
