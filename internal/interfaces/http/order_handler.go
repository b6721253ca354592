package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/stock"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
)

// OrderHandler maneja las peticiones HTTP de órdenes de fabricación
// (protegido). El consumo exige rol con permiso de producción.
type OrderHandler struct {
	consumeUC *stock.ConsumeOrderUseCase
	orderUC   *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(consumeUC *stock.ConsumeOrderUseCase, orderUC *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{consumeUC: consumeUC, orderUC: orderUC}
}

// Consume godoc
// @Summary      Completar una orden de fabricación
// @Description  Consume los materiales del snapshot de BOM, produce el terminado y pasa la orden a DONE, todo en una transacción.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ConsumeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/consume [post]
func (h *OrderHandler) Consume(c *fiber.Ctx) error {
	result, err := h.consumeUC.Consume(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	consumed := make([]dto.StockEntryResponse, 0, len(result.Consumed))
	for _, e := range result.Consumed {
		consumed = append(consumed, dto.NewStockEntryResponse(e))
	}
	return c.JSON(dto.ConsumeResponse{
		Consumed: consumed,
		Produced: dto.NewStockEntryResponse(result.Produced),
		Order:    dto.NewOrderResponse(result.Order),
	})
}

// GetByID godoc
// @Summary      Obtener una orden de fabricación
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orderUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}
