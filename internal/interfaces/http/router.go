package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/gestion-comercial/internal/application/catalog"
	"github.com/jcastano/gestion-comercial/internal/application/orders"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrdersUC  *orders.UseCase
	CatalogUC *catalog.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todo /api requiere Bearer Token.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	orderHandler := NewOrderHandler(deps.OrdersUC)
	ordersGroup := api.Group("/orders")
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", orderHandler.Delete)
	ordersGroup.Get("/:id/classification", orderHandler.Classification)
	ordersGroup.Get("/:id/installments", orderHandler.ListInstallments)
	ordersGroup.Post("/:id/installments/:seq/pay", orderHandler.PayInstallment)

	productHandler := NewProductHandler(deps.CatalogUC, deps.OrdersUC)
	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/stock", productHandler.Stock)

	partnerHandler := NewPartnerHandler(deps.CatalogUC)
	partners := api.Group("/partners")
	partners.Post("/", partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
}
