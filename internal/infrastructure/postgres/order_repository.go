package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_no, product_id, quantity, state, bom_snapshot, started_at, completed_at, created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con
// pool o tx). El snapshot de BOM vive como JSONB versionado con la orden,
// desacoplado del BOM vivo del catálogo.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene una orden. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM manufacturing_orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE):
// dos consumos concurrentes de la misma orden se serializan y el segundo ve
// el estado DONE del primero.
func (r *OrderRepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM manufacturing_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *OrderRepo) getOne(query, id string) (*entity.ManufacturingOrder, error) {
	var o entity.ManufacturingOrder
	var snapshot []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNo, &o.ProductID, &o.Quantity, &o.State, &snapshot,
		&o.StartedAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &o.BOMSnapshot); err != nil {
			return nil, fmt.Errorf("decode bom snapshot: %w", err)
		}
	}
	return &o, nil
}

// UpdateState persiste el estado y la fecha de completado de la orden.
// Es la única escritura que el motor de stock hace sobre órdenes.
func (r *OrderRepo) UpdateState(order *entity.ManufacturingOrder) error {
	query := `
		UPDATE manufacturing_orders
		SET state = $2, completed_at = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, order.ID, order.State, order.CompletedAt)
	if err != nil {
		return fmt.Errorf("update order state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order state: orden %s no encontrada", order.ID)
	}
	return nil
}
