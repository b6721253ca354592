package entity

import (
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

// Tipos de entrada del ledger (derivados del signo de Change).
const (
	EntryTypeIn  = "IN"  // Change >= 0
	EntryTypeOut = "OUT" // Change < 0
)

// SourceType identifica el origen de un movimiento de stock. Es un conjunto
// cerrado: se valida en el borde, nunca se acepta un string abierto.
type SourceType string

const (
	SourceManualAdjustment SourceType = "MANUAL_ADJUSTMENT"
	SourceMOConsumption    SourceType = "MO_CONSUMPTION"
	SourceMOProduction     SourceType = "MO_PRODUCTION"
	SourceInitialStock     SourceType = "INITIAL_STOCK"
)

// Validate verifica que el source type pertenezca al conjunto cerrado.
func (s SourceType) Validate() error {
	switch s {
	case SourceManualAdjustment, SourceMOConsumption, SourceMOProduction, SourceInitialStock:
		return nil
	}
	return &domain.ValidationError{Field: "source_type", Reason: "valor fuera del conjunto permitido: " + string(s)}
}

// StockEntry es un registro del ledger de stock: un cambio firmado, inmutable
// una vez escrito (nunca se actualiza ni se borra; el ledger es la auditoría
// completa). BalanceAfter es el total acumulado del producto inmediatamente
// después de esta entrada.
type StockEntry struct {
	ID           string
	Seq          int64 // orden total de escritura (bigserial)
	ProductID    string
	Change       int64  // positivo entrada, negativo salida
	Type         string // IN | OUT, derivado de Change
	Quantity     int64  // |Change|
	SourceType   SourceType
	SourceID     string // orden o actor que originó el movimiento
	BalanceAfter int64
	Note         string
	CreatedAt    time.Time
}

// NewStockEntry arma una entrada derivando Type y Quantity del signo de change.
// El ID y Seq los asigna la persistencia.
func NewStockEntry(productID string, change int64, source SourceType, sourceID, note string, balanceAfter int64) *StockEntry {
	entryType := EntryTypeIn
	qty := change
	if change < 0 {
		entryType = EntryTypeOut
		qty = -change
	}
	return &StockEntry{
		ProductID:    productID,
		Change:       change,
		Type:         entryType,
		Quantity:     qty,
		SourceType:   source,
		SourceID:     sourceID,
		BalanceAfter: balanceAfter,
		Note:         note,
	}
}
