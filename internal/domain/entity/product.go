package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (material o producto terminado).
// El catálogo es dueño de estos registros: el motor de stock solo los lee.
type Product struct {
	ID            string
	SKU           string          // código único
	Name          string
	Unit          string          // pcs, kg, m, etc.
	MinStockAlert int64           // umbral de alerta de stock bajo
	IsFinished    bool            // true = producto terminado (salida de órdenes)
	Price         decimal.Decimal // precio de venta (solo lectura, catálogo)
	Cost          decimal.Decimal // costo promedio (solo lectura, catálogo)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
