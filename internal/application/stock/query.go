package stock

import (
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// QueryUseCase atiende las lecturas del ledger (balance, historial,
// alertas). Los repositorios van atados al pool: son consultas fuera de
// cualquier transacción de escritura.
type QueryUseCase struct {
	entries  repository.StockEntryRepository
	products repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(entries repository.StockEntryRepository, products repository.ProductRepository) *QueryUseCase {
	return &QueryUseCase{entries: entries, products: products}
}

// Balance devuelve el balance actual de un producto (0 si no tiene entradas).
func (uc *QueryUseCase) Balance(productID string) (int64, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, &domain.NotFoundError{Kind: "producto", ID: productID}
	}
	return uc.entries.CurrentBalance(productID)
}

// Entries lista el historial del ledger de un producto, más recientes primero.
func (uc *QueryUseCase) Entries(productID string, limit, offset int) ([]*entity.StockEntry, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Kind: "producto", ID: productID}
	}
	return uc.entries.ListByProduct(productID, limit, offset)
}

// LowStock lista productos en o bajo su umbral de alerta.
func (uc *QueryUseCase) LowStock(limit, offset int) ([]*repository.ProductBalance, error) {
	return uc.products.ListLowStock(limit, offset)
}
