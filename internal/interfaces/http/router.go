package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps handler dependencies for the router.
type RouterDeps struct {
	Reconcile *ReconcileHandler
	Inventory *InventoryHandler
	Warehouse *WarehouseHandler
	JWTSecret string
}

// Router registers the API routes. Everything is behind bearer auth.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	inv := api.Group("/inventory")
	inv.Post("/adjustments/import", deps.Reconcile.ImportAdjustments)
	inv.Get("/items", deps.Inventory.ListItems)
	inv.Get("/movements", deps.Inventory.ListMovements)

	orders := api.Group("/purchase-orders")
	orders.Post("/:id/receipts", deps.Reconcile.ReceiveAgainstOrder)

	warehouses := api.Group("/warehouses")
	warehouses.Get("/", deps.Warehouse.List)
}
