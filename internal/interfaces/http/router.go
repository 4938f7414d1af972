package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/admin"
	"github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	SupplierUC    *usecase.SupplierUseCase
	SetupUC       *usecase.SetupUseCase
	Features      *usecase.FeatureService
	Ledger        *inventory.LedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Dashboard     *analytics.DashboardUseCase
	Reports       *analytics.ReportUseCase
	Invitations   *admin.InvitationUseCase
	Clients       *admin.ClientUseCase
	Stats         *admin.StatsUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories (capacidad product_categories)
	categories := protected.Group("/categories", RequireFeature(entity.FeatureProductCategories, deps.Features))
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers (capacidad supplier_management)
	suppliers := protected.Group("/suppliers", RequireFeature(entity.FeatureSupplierManagement, deps.Features))
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)

	// Dashboard
	protected.Get("/dashboard/summary", NewDashboardHandler(deps.Dashboard).GetSummary)

	// Reports (capacidad reports)
	reports := protected.Group("/reports", RequireFeature(entity.FeatureReports, deps.Features))
	reportHandler := NewReportHandler(deps.Reports, deps.Replenishment)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/alerts", reportHandler.Alerts)
	reports.Get("/abc.csv", reportHandler.ABCCSV)
	reports.Get("/abc.pdf", reportHandler.ABCPDF)

	// Setup
	protected.Post("/setup/sample-data", NewSetupHandler(deps.SetupUC).SampleData)

	// Admin
	adminGroup := protected.Group("/admin", RequireRole(domain.RoleAdmin))
	adminHandler := NewAdminHandler(deps.Invitations, deps.Clients, deps.Stats)
	adminGroup.Get("/stats", adminHandler.Stats)
	adminGroup.Get("/clients", adminHandler.ListClients)
	adminGroup.Get("/clients/:id", adminHandler.GetClient)
	adminGroup.Patch("/clients/:id/status", adminHandler.SetClientStatus)
	adminGroup.Patch("/clients/:id/features", adminHandler.UpdateClientFeatures)
	adminGroup.Post("/invitations", adminHandler.CreateInvitation)
	adminGroup.Get("/invitations", adminHandler.ListInvitations)
	adminGroup.Delete("/invitations/:id", adminHandler.DeleteInvitation)
}
