package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

// Estados de una orden de fabricación. El motor de stock solo ejecuta la
// transición IN_PROGRESS → DONE (al consumir); el resto pertenece al módulo
// de órdenes.
const (
	OrderStatePlanned    = "PLANNED"
	OrderStateInProgress = "IN_PROGRESS"
	OrderStateDone       = "DONE"
	OrderStateCanceled   = "CANCELED"
)

// BOMComponent es una línea del snapshot de BOM: material y cantidad por
// unidad de producto terminado. Nombre y SKU se congelan junto con la
// cantidad para que la orden sea legible aunque el catálogo cambie.
type BOMComponent struct {
	MaterialID   string `json:"material_id"`
	QtyPerUnit   int64  `json:"qty_per_unit"`
	MaterialName string `json:"material_name"`
	MaterialSKU  string `json:"material_sku"`
}

// BOMSnapshot es la copia inmutable del BOM capturada cuando la orden entró
// a producción. El consumo se calcula SIEMPRE contra este snapshot, nunca
// contra el BOM vivo del catálogo: ediciones posteriores a la fórmula no
// cambian lo que una orden en curso o histórica consumió.
type BOMSnapshot []BOMComponent

// Validate verifica que el snapshot sea consumible: cada componente con
// material y cantidad por unidad estrictamente positiva. Un snapshot
// malformado jamás debe llegar a generar movimientos (una cantidad negativa
// convertiría un consumo en una entrada de stock).
func (s BOMSnapshot) Validate() error {
	for _, c := range s {
		if c.MaterialID == "" {
			return &domain.ValidationError{Field: "bom_snapshot", Reason: "componente sin material"}
		}
		if c.QtyPerUnit <= 0 {
			return &domain.ValidationError{
				Field:  "bom_snapshot",
				Reason: fmt.Sprintf("qty_per_unit del material %s debe ser positivo, es %d", c.MaterialID, c.QtyPerUnit),
			}
		}
	}
	return nil
}

// ManufacturingOrder representa una orden de fabricación. El módulo de
// órdenes es dueño de todas las transiciones salvo IN_PROGRESS→DONE, que la
// ejecuta el orquestador de consumo de forma atómica con los movimientos.
type ManufacturingOrder struct {
	ID          string
	OrderNo     string
	ProductID   string // producto terminado de salida
	Quantity    int64  // unidades a producir
	State       string
	BOMSnapshot BOMSnapshot
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RequiredFor devuelve la cantidad total requerida de un componente del
// snapshot para la cantidad de la orden.
func (o *ManufacturingOrder) RequiredFor(c BOMComponent) int64 {
	return c.QtyPerUnit * o.Quantity
}
