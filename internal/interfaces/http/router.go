package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LedgerUC    *ledger.UseCase
	ItemUC      *usecase.ItemUseCase
	CategoryUC  *usecase.CategoryUseCase
	DashboardUC *usecase.DashboardUseCase
	ReportUC    *usecase.ReportUseCase
	JWTSecret   string
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

	// Items: lecturas + mutaciones del libro de stock (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	items.Post("/", ledgerHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", ledgerHandler.Update)
	items.Delete("/:id", ledgerHandler.Delete)
	items.Post("/:id/restock", ledgerHandler.Restock)
	items.Post("/:id/sell", ledgerHandler.Sell)
	items.Post("/:id/split", ledgerHandler.Split)
	items.Get("/:id/entries", itemHandler.StockEntries)
	items.Get("/:id/sales", itemHandler.Sales)

	// Libros completos del usuario (protegido)
	protected.Get("/sales", itemHandler.RecentSales)
	protected.Get("/entries", itemHandler.RecentEntries)

	// Categorías y subcategorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.CreateCategory)
	categories.Get("/", categoryHandler.ListCategories)
	categories.Delete("/:id", categoryHandler.DeleteCategory)

	subcategories := protected.Group("/subcategories")
	subcategories.Post("/", categoryHandler.CreateSubcategory)
	subcategories.Get("/", categoryHandler.ListSubcategories)
	subcategories.Delete("/:id", categoryHandler.DeleteSubcategory)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory", reportHandler.InventoryPDF)
}
