package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// OrderRepository define el puerto de acceso a órdenes de fabricación.
// El motor de stock lee estado y snapshot de BOM, y escribe únicamente la
// transición IN_PROGRESS→DONE (UpdateState) como parte del consumo.
type OrderRepository interface {
	GetByID(id string) (*entity.ManufacturingOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para que
	// dos consumos concurrentes de la misma orden se serialicen.
	GetForUpdate(id string) (*entity.ManufacturingOrder, error)
	// UpdateState persiste el nuevo estado y la fecha de completado.
	UpdateState(order *entity.ManufacturingOrder) error
}
