package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chcomputer/almacen-api/internal/application/analytics"
	"github.com/chcomputer/almacen-api/internal/application/auth"
	"github.com/chcomputer/almacen-api/internal/application/export"
	"github.com/chcomputer/almacen-api/internal/application/inventory"
	"github.com/chcomputer/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	BrandUC     *usecase.BrandUseCase
	ModelUC     *usecase.ModelUseCase
	SupplierUC  *usecase.SupplierUseCase
	LocationUC  *usecase.LocationUseCase
	UserUC      *usecase.UserUseCase
	ApplyBatch  *inventory.ApplyBatchUseCase
	MovQueries  *inventory.MovementQueryUseCase
	DashboardUC *analytics.DashboardUseCase
	ExportUC    *export.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login es público, el resto exige Bearer Token.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Products (protegido). Las rutas fijas van antes de /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/generate-code", productHandler.GenerateCode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyBatch, deps.MovQueries)
	movements.Post("/", movementHandler.Create)
	movements.Post("/batch", movementHandler.CreateBatch)
	movements.Get("/", movementHandler.List)
	movements.Get("/generate-code", movementHandler.GenerateCode)
	movements.Get("/code/:code", movementHandler.GetByCode)
	movements.Get("/:id", movementHandler.GetByID)

	// Catálogos (protegido)
	brands := protected.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC)
	brands.Post("/", brandHandler.Create)
	brands.Get("/", brandHandler.List)
	brands.Get("/generate-code", brandHandler.GenerateCode)
	brands.Put("/:id", brandHandler.Update)
	brands.Delete("/:id", brandHandler.Delete)

	models := protected.Group("/models")
	modelHandler := NewModelHandler(deps.ModelUC)
	models.Post("/", modelHandler.Create)
	models.Get("/", modelHandler.List)
	models.Get("/generate-code", modelHandler.GenerateCode)
	models.Put("/:id", modelHandler.Update)
	models.Delete("/:id", modelHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.Stats)

	// Export (protegido)
	exportGroup := protected.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exportGroup.Get("/products", exportHandler.Products)
	exportGroup.Get("/movements", exportHandler.Movements)

	// Users (solo ADMIN)
	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
