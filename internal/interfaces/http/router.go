package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	appanalytics "github.com/luxymarbre/devis-api/internal/application/analytics"
	"github.com/luxymarbre/devis-api/internal/application/auth"
	"github.com/luxymarbre/devis-api/internal/application/inventory"
	"github.com/luxymarbre/devis-api/internal/application/quotation"
	"github.com/luxymarbre/devis-api/internal/application/usecase"
	"github.com/luxymarbre/devis-api/internal/domain/entity"
	"github.com/luxymarbre/devis-api/pkg/logger"
	"github.com/luxymarbre/devis-api/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	QuotationUC      *quotation.UseCase
	DocumentUC       *quotation.DocumentUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	Validator        *validator.Validator
	Logger           *logger.Logger
	JWTSecret        string
	// LoginMaxPerMinute intentos de login por IP y minuto; 0 desactiva el límite.
	LoginMaxPerMinute int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}
	adminOnly := RequireRole(entity.RoleAdmin)

	api := app.Group("/api")

	// Auth (público; register acepta token de admin para elegir rol)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, v, log)
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	if deps.LoginMaxPerMinute > 0 {
		authGroup.Post("/login", limiter.New(limiter.Config{
			Max:        deps.LoginMaxPerMinute,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    "TOO_MANY_REQUESTS",
					"message": "demasiados intentos, reintente en un minuto",
				})
			},
		}), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, log)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)

	// Products (lectura para todos; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, v, log)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment, v, log)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", inventoryHandler.ListByProduct)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Inventory
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", adminOnly, inventoryHandler.RegisterMovement)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Quotations (/search antes de /:id)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.DocumentUC, v, log)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/search", quotationHandler.Search)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Patch("/:id/status", quotationHandler.SetStatus)
	quotations.Delete("/:id", adminOnly, quotationHandler.Delete)
	quotations.Get("/:id/movements", inventoryHandler.ListByQuotation)
	quotations.Get("/:id/invoice", quotationHandler.Invoice)
	quotations.Post("/:id/invoice", quotationHandler.InvoiceFromBody)
	quotations.Get("/:id/pdf", quotationHandler.QuotationPDF)
	quotations.Get("/:id/invoice/pdf", quotationHandler.InvoicePDF)
	quotations.Post("/:id/invoice/pdf", quotationHandler.InvoicePDFFromBody)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/stats", dashboardHandler.GetStats)
}
