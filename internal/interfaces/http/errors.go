package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

// respondError mapea los errores de dominio a respuestas HTTP. Los errores
// estructurados llevan ids, cantidades y estados suficientes para que el
// cliente arme un mensaje preciso.
func respondError(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":       "INSUFFICIENT_STOCK",
			"message":    insufficientErr.Error(),
			"product_id": insufficientErr.ProductID,
			"available":  insufficientErr.Available,
			"required":   insufficientErr.Required,
			"detail":     dto.NewShortageDetails(insufficientErr.Detail),
		})
	}

	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":     "INVALID_STATE",
			"message":  stateErr.Error(),
			"order_id": stateErr.OrderID,
			"current":  stateErr.Current,
			"expected": stateErr.Expected,
		})
	}

	var bomErr *domain.MissingBOMError
	if errors.As(err, &bomErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":     "MISSING_BOM",
			"message":  bomErr.Error(),
			"order_id": bomErr.OrderID,
		})
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
