package dto

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AdjustStockRequest solicitud de ajuste manual de stock. Delta acepta
// decimal en el wire pero debe ser entero (las unidades del ledger son
// enteras); se valida en DeltaUnits.
type AdjustStockRequest struct {
	ProductID string          `json:"product_id"`
	Delta     decimal.Decimal `json:"delta"`
	Reason    string          `json:"reason"`
}

// DeltaUnits convierte el delta a unidades enteras del ledger.
// Falla con ValidationError si el valor trae parte fraccionaria.
func (r AdjustStockRequest) DeltaUnits() (int64, error) {
	if !r.Delta.IsInteger() {
		return 0, &domain.ValidationError{Field: "delta", Reason: "debe ser un entero (las unidades no admiten fracciones)"}
	}
	return r.Delta.IntPart(), nil
}

// StockEntryResponse una entrada del ledger en respuestas HTTP.
type StockEntryResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	Change       int64     `json:"change"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	SourceType   string    `json:"source_type"`
	SourceID     string    `json:"source_id,omitempty"`
	BalanceAfter int64     `json:"balance_after"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewStockEntryResponse mapea la entidad al DTO.
func NewStockEntryResponse(e *entity.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:           e.ID,
		ProductID:    e.ProductID,
		Change:       e.Change,
		Type:         e.Type,
		Quantity:     e.Quantity,
		SourceType:   string(e.SourceType),
		SourceID:     e.SourceID,
		BalanceAfter: e.BalanceAfter,
		Note:         e.Note,
		CreatedAt:    e.CreatedAt,
	}
}

// BalanceResponse balance actual de un producto.
type BalanceResponse struct {
	ProductID string `json:"product_id"`
	Balance   int64  `json:"balance"`
}

// LowStockAlertResponse producto en o bajo su umbral de alerta.
type LowStockAlertResponse struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	CurrentStock  int64  `json:"current_stock"`
	MinStockLevel int64  `json:"min_stock_level"`
}

// ShortageDetail requerimiento vs. disponibilidad de un componente en el
// pre-chequeo de consumo (diagnóstico completo del error).
type ShortageDetail struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Required    int64  `json:"required"`
	Available   int64  `json:"available"`
	Short       bool   `json:"short"`
}

// NewShortageDetails mapea el detalle del error de stock insuficiente.
func NewShortageDetails(shortages []domain.Shortage) []ShortageDetail {
	out := make([]ShortageDetail, 0, len(shortages))
	for _, s := range shortages {
		out = append(out, ShortageDetail{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			SKU:         s.SKU,
			Required:    s.Required,
			Available:   s.Available,
			Short:       s.Short(),
		})
	}
	return out
}
