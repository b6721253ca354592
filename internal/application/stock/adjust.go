package stock

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// Adjust registra un ajuste manual de stock: un delta arbitrario firmado con
// motivo obligatorio y el actor como origen. Es un wrapper fino sobre Apply,
// sujeto al mismo invariante de balance no negativo. La autorización del
// actor es responsabilidad del caller (middleware).
func (uc *StockUseCase) Adjust(ctx context.Context, productID string, delta int64, reason, actorID string) (*entity.StockEntry, error) {
	if reason == "" {
		return nil, &domain.ValidationError{Field: "reason", Reason: "requerido para ajustes manuales"}
	}
	if actorID == "" {
		return nil, &domain.ValidationError{Field: "actor_id", Reason: "requerido"}
	}
	return uc.Apply(ctx, Operation{
		ProductID:  productID,
		Change:     delta,
		SourceType: entity.SourceManualAdjustment,
		SourceID:   actorID,
		Note:       reason,
	})
}
