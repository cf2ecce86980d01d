package routes

import (
	"github.com/gofiber/fiber/v2"

	"atelier-backend/controllers"
	"atelier-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Clients
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/client/:id", controllers.GetClient)
	protected.Patch("/client/:id", controllers.UpdateClient)

	// Pricing catalog (config store; the engine only ever reads it)
	protected.Get("/catalog", controllers.GetCatalog)
	protected.Post("/catalog/product-types", controllers.CreateProductTypes) // batch create
	protected.Patch("/catalog/product-types/:id", controllers.UpdateProductType)
	protected.Post("/catalog/sizes", controllers.CreateSizeOptions)
	protected.Patch("/catalog/sizes/:id", controllers.UpdateSizeOption)
	protected.Post("/catalog/materials", controllers.CreateMaterialOptions)
	protected.Patch("/catalog/materials/:id", controllers.UpdateMaterialOption)
	protected.Post("/catalog/addons", controllers.CreateAddons)
	protected.Patch("/catalog/addons/:id", controllers.UpdateAddon)
	protected.Post("/catalog/fees", controllers.CreateFeeRules)
	protected.Patch("/catalog/fees/:id", controllers.UpdateFeeRule)

	// Orders (breakdown recomputed through the pricing engine on every edit)
	protected.Post("/order", controllers.CreateOrder)
	protected.Get("/orders", controllers.GetOrders)
	protected.Get("/order/:id", controllers.GetOrder)
	protected.Put("/orders/:id", controllers.UpdateOrder)
	protected.Delete("/orders/:id", controllers.DeleteOrder)

	// Payments ledger
	protected.Post("/orders/:id/payments", controllers.CreatePayment)
	protected.Get("/orders/:id/payments", controllers.ListPayments)
	protected.Delete("/orders/:id/payments/:paymentId", controllers.DeletePayment)

	// Invoices
	protected.Post("/orders/:id/invoice", controllers.GenerateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
}
