package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/stock"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
)

// Roles con permiso sobre el motor de stock. La gestión de usuarios y la
// emisión de tokens pertenecen al servicio de identidad externo.
const (
	RoleAdmin      = "admin"
	RoleInventario = "inventario"
	RoleProduccion = "produccion"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC   *stock.StockUseCase
	QueryUC   *stock.QueryUseCase
	ConsumeUC *stock.ConsumeOrderUseCase
	ProductUC *usecase.ProductUseCase
	OrderUC   *usecase.OrderUseCase
	JWTSecret string
}

// Router registra las rutas de la API. Todo el motor de stock exige Bearer
// Token; los ajustes manuales y el consumo además exigen rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Ledger de stock
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.QueryUC)
	stockGroup.Post("/adjustments", RequireRole(RoleAdmin, RoleInventario), stockHandler.Adjust)
	stockGroup.Get("/alerts", stockHandler.Alerts)
	stockGroup.Get("/:productId/balance", stockHandler.Balance)
	stockGroup.Get("/:productId/entries", stockHandler.Entries)

	// Órdenes de fabricación
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.ConsumeUC, deps.OrderUC)
	orders.Post("/:id/consume", RequireRole(RoleAdmin, RoleProduccion), orderHandler.Consume)
	orders.Get("/:id", orderHandler.GetByID)

	// Catálogo de productos (solo lectura)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
}
