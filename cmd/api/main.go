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

	"github.com/tu-usuario/haccp-pro/internal/application/analytics"
	"github.com/tu-usuario/haccp-pro/internal/application/auth"
	"github.com/tu-usuario/haccp-pro/internal/application/inventory"
	"github.com/tu-usuario/haccp-pro/internal/application/ocr"
	"github.com/tu-usuario/haccp-pro/internal/application/report"
	"github.com/tu-usuario/haccp-pro/internal/application/transfer"
	"github.com/tu-usuario/haccp-pro/internal/application/usecase"
	"github.com/tu-usuario/haccp-pro/internal/domain/haccp"
	infraai "github.com/tu-usuario/haccp-pro/internal/infrastructure/ai"
	infrapdf "github.com/tu-usuario/haccp-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/haccp-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/haccp-pro/internal/interfaces/http"
	"github.com/tu-usuario/haccp-pro/pkg/config"
	"github.com/tu-usuario/haccp-pro/pkg/logger"
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

	profileRepo := postgres.NewProfileRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	deliveryRepo := postgres.NewDeliveryNoteRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	reportRepo := postgres.NewHaccpReportRepository(pool)
	accessRepo := postgres.NewAccessRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	classifier := haccp.NewClassifier(haccp.Thresholds{
		CriticalDays: cfg.Alerts.CriticalDays,
		WarningDays:  cfg.Alerts.WarningDays,
	})

	authUC := auth.NewUseCase(profileRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	onboardingUC := usecase.NewOnboardingUseCase(businessRepo, txRunner)
	locationUC := usecase.NewLocationUseCase(locationRepo, businessRepo, accessRepo)
	productUC := usecase.NewProductUseCase(productRepo, locationRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, locationRepo)
	subscriptionUC := usecase.NewSubscriptionUseCase(subscriptionRepo)
	inventoryUC := inventory.NewUseCase(batchRepo, productRepo, locationRepo, classifier)
	deliveryUC := inventory.NewDeliveryUseCase(deliveryRepo, locationRepo, txRunner, classifier)
	transferUC := transfer.NewUseCase(transferRepo, batchRepo, locationRepo, accessRepo, txRunner)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewUseCase(locationRepo, deliveryRepo, batchRepo, reportRepo, pdfGenerator)

	openAISvc := infraai.NewOpenAIService(cfg.OCR.OpenAIAPIKey, cfg.OCR.OpenAIModel)
	ocrUC := ocr.NewUseCase(openAISvc)

	dashboardUC := analytics.NewDashboardUseCase(batchRepo, transferRepo, deliveryRepo, classifier)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "HACCP Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OnboardingUC:   onboardingUC,
		LocationUC:     locationUC,
		ProductUC:      productUC,
		SupplierUC:     supplierUC,
		SubscriptionUC: subscriptionUC,
		InventoryUC:    inventoryUC,
		DeliveryUC:     deliveryUC,
		TransferUC:     transferUC,
		ReportUC:       reportUC,
		OCRUC:          ocrUC,
		DashboardUC:    dashboardUC,
		AccessRepo:     accessRepo,
		JWTSecret:      cfg.JWT.Secret,
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
