package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// StockEntryRepository define el puerto de persistencia del ledger de stock.
// El ledger es append-only: no existe Update ni Delete, cada entrada es
// inmutable una vez escrita.
type StockEntryRepository interface {
	// Create persiste una entrada y asigna ID, Seq y CreatedAt.
	Create(entry *entity.StockEntry) error
	// CurrentBalance devuelve el BalanceAfter de la entrada más reciente del
	// producto, o 0 si no tiene entradas. Dentro de una transacción, lee el
	// mismo snapshot que las escrituras pendientes.
	CurrentBalance(productID string) (int64, error)
	GetByID(id string) (*entity.StockEntry, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockEntry, error)
}
