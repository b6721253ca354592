package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, unit, min_stock_alert, is_finished, price, cost, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable
// con pool o tx). El catálogo es de solo lectura para el motor de stock;
// GetForUpdate solo toma el lock de la fila.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
// Serializa la sección crítica "leer balance → escribir entrada" por
// producto: de dos escritores concurrentes, el segundo espera el commit del
// primero y lee el balance ya actualizado.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *ProductRepo) getOne(query, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Unit, &p.MinStockAlert, &p.IsFinished,
		&p.Price, &p.Cost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos del catálogo ordenados por SKU.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Unit, &p.MinStockAlert, &p.IsFinished,
			&p.Price, &p.Cost, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListLowStock lista productos cuyo balance actual (última entrada del
// ledger, 0 si no hay) es <= su umbral de alerta.
func (r *ProductRepo) ListLowStock(limit, offset int) ([]*repository.ProductBalance, error) {
	query := `
		SELECT ` + productColumns + `, COALESCE(le.balance_after, 0) AS balance
		FROM products p
		LEFT JOIN LATERAL (
			SELECT balance_after FROM stock_entries
			WHERE product_id = p.id
			ORDER BY seq DESC LIMIT 1
		) le ON true
		WHERE COALESCE(le.balance_after, 0) <= p.min_stock_alert
		ORDER BY p.sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []*repository.ProductBalance
	for rows.Next() {
		var pb repository.ProductBalance
		p := &pb.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Unit, &p.MinStockAlert, &p.IsFinished,
			&p.Price, &p.Cost, &p.CreatedAt, &p.UpdatedAt, &pb.Balance); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, &pb)
	}
	return list, rows.Err()
}
