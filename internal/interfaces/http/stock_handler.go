package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/stock"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del ledger de stock (protegido).
type StockHandler struct {
	stockUC *stock.StockUseCase
	queryUC *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stockUC *stock.StockUseCase, queryUC *stock.QueryUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC, queryUC: queryUC}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Registra un delta firmado con motivo; el actor sale del token.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, delta (entero), reason"
// @Success      201   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	delta, err := in.DeltaUnits()
	if err != nil {
		return respondError(c, err)
	}
	entry, err := h.stockUC.Adjust(c.Context(), in.ProductID, delta, in.Reason, actorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockEntryResponse(entry))
}

// Balance godoc
// @Summary      Balance actual de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{productId}/balance [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	productID := c.Params("productId")
	balance, err := h.queryUC.Balance(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ProductID: productID, Balance: balance})
}

// Entries godoc
// @Summary      Historial del ledger de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "máximo de filas (default 20)"
// @Param        offset     query  int     false  "desplazamiento"
// @Success      200  {array}   dto.StockEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{productId}/entries [get]
func (h *StockHandler) Entries(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	entries, err := h.queryUC.Entries(productID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NewStockEntryResponse(e))
	}
	return c.JSON(fiber.Map{"entries": out, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Alerts godoc
// @Summary      Productos en o bajo su umbral de alerta
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertResponse
// @Router       /api/stock/alerts [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.queryUC.LowStock(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LowStockAlertResponse, 0, len(list))
	for _, pb := range list {
		out = append(out, dto.LowStockAlertResponse{
			ProductID:     pb.Product.ID,
			SKU:           pb.Product.SKU,
			Name:          pb.Product.Name,
			CurrentStock:  pb.Balance,
			MinStockLevel: pb.Product.MinStockAlert,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}
