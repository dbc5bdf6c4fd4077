package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/luxymarbre/devis-api/internal/application/analytics"
	"github.com/luxymarbre/devis-api/internal/application/auth"
	"github.com/luxymarbre/devis-api/internal/application/inventory"
	"github.com/luxymarbre/devis-api/internal/application/quotation"
	"github.com/luxymarbre/devis-api/internal/application/usecase"
	infrapdf "github.com/luxymarbre/devis-api/internal/infrastructure/pdf"
	"github.com/luxymarbre/devis-api/internal/infrastructure/postgres"
	"github.com/luxymarbre/devis-api/internal/infrastructure/storage"
	httpRouter "github.com/luxymarbre/devis-api/internal/interfaces/http"
	"github.com/luxymarbre/devis-api/pkg/config"
	"github.com/luxymarbre/devis-api/pkg/logger"
	"github.com/luxymarbre/devis-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es obligatorio")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", postgres.RedactDSN(cfg.DB.ConnectionString())).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Archivo de PDFs en MinIO: opcional, sin credenciales los PDF solo se devuelven.
	var archive quotation.DocumentArchive
	if cfg.Storage.Enabled() {
		minioArchive, err := storage.NewMinIOArchive(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente MinIO")
		}
		bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = minioArchive.EnsureBucket(bucketCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("bucket MinIO no disponible, archivo desactivado")
		} else {
			archive = minioArchive
		}
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.CompanyInfo{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
		City:    cfg.Company.City,
	})

	quotationUC := quotation.NewUseCase(quotationRepo, productRepo, txRunner, log.Component("quotation"), cfg.Phone.DefaultRegion)
	documentUC := quotation.NewDocumentUseCase(quotationUC, pdfGenerator, archive, log.Component("documents"))
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, movementRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(analyticsRepo, cfg.Inventory.LowStockThreshold)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, cfg.Inventory.LowStockThreshold)
	productUC := usecase.NewProductUseCase(productRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Phone.DefaultRegion)

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Devis API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger.json no encontrado, /docs desactivado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		UserUC:            userUC,
		ProductUC:         productUC,
		QuotationUC:       quotationUC,
		DocumentUC:        documentUC,
		RegisterMovement:  registerMovementUC,
		Replenishment:     replenishmentUC,
		DashboardUC:       dashboardUC,
		Validator:         validator.New(),
		Logger:            httpLog,
		JWTSecret:         cfg.JWT.Secret,
		LoginMaxPerMinute: cfg.HTTP.LoginRateLimit,
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
