package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// ProductBalance une un producto del catálogo con su balance actual del
// ledger (para listados de alertas y consultas de stock).
type ProductBalance struct {
	Product entity.Product
	Balance int64
}

// ProductRepository define el puerto de lectura del catálogo de productos.
// El motor de stock nunca escribe productos; GetForUpdate solo bloquea la
// fila (SELECT FOR UPDATE) para serializar movimientos por producto.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	// ListLowStock devuelve productos cuyo balance actual es <= su umbral de alerta.
	ListLowStock(limit, offset int) ([]*ProductBalance, error)
}
