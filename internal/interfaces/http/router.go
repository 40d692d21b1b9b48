package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-stock/internal/application/inventory"
	"github.com/jhoicas/pos-stock/internal/application/orders"
	"github.com/jhoicas/pos-stock/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory   *inventory.InventoryUseCase
	Movements   *inventory.MovementUseCase
	Fulfillment *orders.FulfillmentUseCase
	JWTSecret   string
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Todo /api requiere Bearer Token; el empleado del token es el processed_by por defecto
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	supervisors := RequireRole(jwt.RoleManager, jwt.RoleStockClerk)

	invHandler := NewInventoryHandler(deps.Inventory)
	inv := api.Group("/inventory")
	inv.Post("/", supervisors, invHandler.Create)
	inv.Get("/", invHandler.List)
	inv.Get("/low-stock", invHandler.LowStock)
	inv.Get("/product/:productId", invHandler.GetByProduct)
	inv.Get("/:id", invHandler.GetByID)
	inv.Put("/:id", supervisors, invHandler.Update)
	inv.Post("/:id/add", supervisors, invHandler.AddStock)
	inv.Post("/:id/remove", supervisors, invHandler.RemoveStock)
	inv.Post("/:id/stock-check", supervisors, invHandler.StockCheck)

	movHandler := NewMovementHandler(deps.Movements)
	movs := api.Group("/movements")
	movs.Post("/", movHandler.Record)
	movs.Post("/adjustments", RequireRole(jwt.RoleManager), movHandler.Adjustment)
	movs.Post("/receipts", supervisors, movHandler.Receipt)
	movs.Post("/transfers", supervisors, movHandler.Transfer)
	movs.Get("/", movHandler.List)
	movs.Get("/product/:productId", movHandler.ByProduct)
	movs.Get("/reference/:ref", movHandler.ByReference)
	movs.Get("/:id", movHandler.GetByID)

	orderHandler := NewOrderHandler(deps.Fulfillment)
	api.Post("/orders/fulfill", orderHandler.Fulfill)
	api.Post("/payments/process", orderHandler.ProcessPayment)
}
