package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/haccp-pro/internal/application/analytics"
	"github.com/tu-usuario/haccp-pro/internal/application/auth"
	"github.com/tu-usuario/haccp-pro/internal/application/inventory"
	"github.com/tu-usuario/haccp-pro/internal/application/ocr"
	"github.com/tu-usuario/haccp-pro/internal/application/report"
	"github.com/tu-usuario/haccp-pro/internal/application/transfer"
	"github.com/tu-usuario/haccp-pro/internal/application/usecase"
	"github.com/tu-usuario/haccp-pro/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	OnboardingUC   *usecase.OnboardingUseCase
	LocationUC     *usecase.LocationUseCase
	ProductUC      *usecase.ProductUseCase
	SupplierUC     *usecase.SupplierUseCase
	SubscriptionUC *usecase.SubscriptionUseCase
	InventoryUC    *inventory.UseCase
	DeliveryUC     *inventory.DeliveryUseCase
	TransferUC     *transfer.UseCase
	ReportUC       *report.UseCase
	OCRUC          *ocr.UseCase
	DashboardUC    *analytics.DashboardUseCase
	AccessRepo     repository.AccessRepository
	JWTSecret      string
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

	// Onboarding (protegido pero sin exigir suscripción: el usuario recién
	// registrado aún no la tiene)
	onboardingHandler := NewOnboardingHandler(deps.OnboardingUC)
	protected.Post("/onboarding", onboardingHandler.Onboard)

	// Todo lo demás exige suscripción activa o trial vigente
	subscribed := protected.Group("/", RequireActiveSubscription(deps.SubscriptionUC))

	// Locales (protegido)
	locations := subscribed.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)

	// Rutas a un local concreto: exigen acceso al local
	location := locations.Group("/:locationId", RequireLocationAccess(deps.AccessRepo))
	location.Get("/", locationHandler.GetByID)

	// Gestión del local: solo responsables
	manage := location.Group("/", RequireLocationManager(deps.AccessRepo))
	manage.Put("/", locationHandler.Update)
	manage.Delete("/", locationHandler.Delete)
	manage.Post("/roles", locationHandler.AssignRole)
	manage.Get("/roles", locationHandler.ListRoles)
	manage.Delete("/roles/:userId", locationHandler.RemoveRole)

	// Catálogo de productos (protegido, por local)
	products := location.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Proveedores (protegido, por local)
	suppliers := location.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Lotes e inventario (protegido, por local)
	batches := location.Group("/batches")
	batchHandler := NewBatchHandler(deps.InventoryUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Post("/refresh", batchHandler.RefreshStatuses)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Post("/:id/consume", batchHandler.Consume)
	batches.Put("/:id/expiry", batchHandler.UpdateExpiry)
	batches.Post("/:id/acknowledge", batchHandler.Acknowledge)
	location.Get("/alerts", batchHandler.Alerts)
	location.Get("/inventory/summary", batchHandler.Summary)

	// Albaranes de entrada (protegido, por local)
	deliveries := location.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Post("/", deliveryHandler.Register)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)

	// Traspasos internos. Las acciones sobre un traspaso no van bajo
	// /locations porque tocan dos locales; el caso de uso verifica permisos.
	transfersHandler := NewTransferHandler(deps.TransferUC)
	transfers := subscribed.Group("/transfers")
	transfers.Post("/", transfersHandler.Create)
	transfers.Post("/:id/accept", transfersHandler.Accept)
	transfers.Post("/:id/reject", transfersHandler.Reject)
	transfers.Post("/:id/complete", transfersHandler.Complete)
	location.Get("/transfers", transfersHandler.List)
	location.Get("/transfers/candidates", transfersHandler.Candidates)

	// Informes HACCP (protegido, por local)
	reportHandler := NewReportHandler(deps.ReportUC)
	location.Get("/reports/haccp", reportHandler.Generate)
	location.Get("/reports/haccp/history", reportHandler.History)

	// OCR de albaranes (protegido)
	ocrHandler := NewOCRHandler(deps.OCRUC)
	subscribed.Post("/ocr/delivery-note", ocrHandler.Extract)

	// Panel (protegido, por local)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	location.Get("/dashboard", dashboardHandler.Get)
}
