package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/githubcj79/inventory-managment-system/internal/application/inventory"
	"github.com/githubcj79/inventory-managment-system/internal/application/usecase"
	"github.com/githubcj79/inventory-managment-system/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	MovementUC  *usecase.MovementUseCase
	InventoryUC *inventory.InventoryUseCase
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Get("/search", productHandler.Search)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Inventory (stock por tienda)
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Log)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/alerts", inventoryHandler.Alerts)
	inv.Get("/validate", inventoryHandler.Validate)
	inv.Get("/reconciliation", inventoryHandler.Reconciliation)
	inv.Get("/replenishment", inventoryHandler.Replenishment)
	inv.Get("/stores/:id", inventoryHandler.GetByStore)
	inv.Get("/products/:id", inventoryHandler.GetByProduct)
	inv.Post("/transfer", inventoryHandler.Transfer)
	inv.Put("/adjust", inventoryHandler.Adjust)
	inv.Put("/bulk-adjust", inventoryHandler.BulkAdjust)

	// Movements (libro append-only)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.InventoryUC, deps.MovementUC, deps.Log)
	movements.Post("/", movementHandler.Record)
	movements.Get("/range", movementHandler.ByDateRange)
	movements.Get("/product/:id", movementHandler.ByProduct)
	movements.Get("/type/:type", movementHandler.ByType)
	movements.Get("/:id", movementHandler.GetByID)
}
