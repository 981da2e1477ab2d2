package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/replenishment-planner/internal/application/auth"
	"github.com/jhoicas/replenishment-planner/internal/application/planning"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *planning.CatalogUseCase
	PlanningUC *planning.PlanningUseCase
	ExportUC   *planning.ExportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token); cada propietario solo ve sus SKUs
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	planHandler := NewPlanHandler(deps.PlanningUC)
	protected.Post("/replenishment/calculate", planHandler.Calculate)
	protected.Get("/plan", planHandler.OrderPlan)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC, deps.PlanningUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Save)
	products.Get("/:sku", productHandler.Get)
	products.Delete("/:sku", productHandler.Delete)
	products.Put("/:sku/sales", productHandler.UpsertSales)

	exports := protected.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/products.xlsx", exportHandler.ProductsXLSX)
	exports.Get("/plan.xlsx", exportHandler.PlanXLSX)
	exports.Get("/plan.pdf", exportHandler.PlanPDF)
}
