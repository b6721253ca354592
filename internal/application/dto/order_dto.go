package dto

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// BOMComponentResponse una línea del snapshot de BOM de la orden.
type BOMComponentResponse struct {
	MaterialID   string `json:"material_id"`
	QtyPerUnit   int64  `json:"qty_per_unit"`
	MaterialName string `json:"material_name"`
	MaterialSKU  string `json:"material_sku"`
}

// OrderResponse una orden de fabricación en respuestas HTTP.
type OrderResponse struct {
	ID          string                 `json:"id"`
	OrderNo     string                 `json:"order_no"`
	ProductID   string                 `json:"product_id"`
	Quantity    int64                  `json:"quantity"`
	State       string                 `json:"state"`
	BOMSnapshot []BOMComponentResponse `json:"bom_snapshot"`
	StartedAt   *time.Time             `json:"started_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewOrderResponse mapea la entidad al DTO.
func NewOrderResponse(o *entity.ManufacturingOrder) OrderResponse {
	components := make([]BOMComponentResponse, 0, len(o.BOMSnapshot))
	for _, c := range o.BOMSnapshot {
		components = append(components, BOMComponentResponse{
			MaterialID:   c.MaterialID,
			QtyPerUnit:   c.QtyPerUnit,
			MaterialName: c.MaterialName,
			MaterialSKU:  c.MaterialSKU,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		ProductID:   o.ProductID,
		Quantity:    o.Quantity,
		State:       o.State,
		BOMSnapshot: components,
		StartedAt:   o.StartedAt,
		CompletedAt: o.CompletedAt,
		CreatedAt:   o.CreatedAt,
	}
}

// ConsumeResponse resultado del consumo de una orden.
type ConsumeResponse struct {
	Consumed []StockEntryResponse `json:"consumed"`
	Produced StockEntryResponse   `json:"produced"`
	Order    OrderResponse        `json:"order"`
}

// ProductResponse un producto del catálogo en respuestas HTTP.
type ProductResponse struct {
	ID            string `json:"id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	MinStockAlert int64  `json:"min_stock_alert"`
	IsFinished    bool   `json:"is_finished"`
}

// NewProductResponse mapea la entidad al DTO.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Unit:          p.Unit,
		MinStockAlert: p.MinStockAlert,
		IsFinished:    p.IsFinished,
	}
}
