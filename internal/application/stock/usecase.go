package stock

import (
	"context"
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Operation es un cambio de stock firmado a aplicar sobre el ledger.
type Operation struct {
	ProductID  string
	Change     int64 // positivo entrada, negativo salida
	SourceType entity.SourceType
	SourceID   string
	Note       string
}

// Validate verifica la operación en el borde (conjunto cerrado de source
// types, cambio no nulo).
func (op Operation) Validate() error {
	if op.ProductID == "" {
		return &domain.ValidationError{Field: "product_id", Reason: "requerido"}
	}
	if op.Change == 0 {
		return &domain.ValidationError{Field: "change", Reason: "debe ser distinto de cero"}
	}
	return op.SourceType.Validate()
}

// StockUseCase ejecuta cambios de stock contra el ledger de forma
// transaccional, garantizando el invariante de balance no negativo con
// bloqueo de fila por producto (SELECT FOR UPDATE) y Commit/Rollback.
type StockUseCase struct {
	txRunner TxRunner
	notifier *LowStockNotifier
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, notifier *LowStockNotifier) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, notifier: notifier}
}

// Apply valida y aplica UNA operación: bloquea la fila del producto, lee el
// balance vigente, rechaza con InsufficientStockError si el resultado sería
// negativo y persiste una entrada inmutable con el balance resultante.
// Tras el commit dispara el chequeo de stock bajo para ese producto
// (best-effort, nunca afecta el resultado).
func (uc *StockUseCase) Apply(ctx context.Context, op Operation) (*entity.StockEntry, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	var entry *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(
		entries repository.StockEntryRepository,
		products repository.ProductRepository,
		_ repository.OrderRepository,
	) error {
		var err error
		entry, err = applyOne(entries, products, op)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, op.ProductID)
	return entry, nil
}

// ApplyAll aplica un grupo de operaciones como unidad todo-o-nada: si alguna
// violaría el invariante de balance no negativo, la transacción completa se
// descarta y ninguna entrada queda persistida. Tras el commit dispara el
// chequeo de stock bajo una sola vez por producto tocado.
func (uc *StockUseCase) ApplyAll(ctx context.Context, ops []Operation) ([]*entity.StockEntry, error) {
	if len(ops) == 0 {
		return nil, &domain.ValidationError{Field: "operations", Reason: "lista vacía"}
	}
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return nil, err
		}
	}

	// Orden estable por producto antes de bloquear filas: dos batches que
	// toquen los mismos productos toman los locks en el mismo orden.
	sorted := make([]Operation, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	var result []*entity.StockEntry
	err := uc.txRunner.Run(ctx, func(
		entries repository.StockEntryRepository,
		products repository.ProductRepository,
		_ repository.OrderRepository,
	) error {
		result = make([]*entity.StockEntry, 0, len(sorted))
		for _, op := range sorted {
			entry, err := applyOne(entries, products, op)
			if err != nil {
				return err
			}
			result = append(result, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, dedupeProductIDs(sorted)...)
	return result, nil
}

// applyOne ejecuta la sección crítica "leer balance → calcular → escribir"
// para un producto. GetForUpdate serializa a los escritores concurrentes del
// mismo producto a nivel de storage: de dos operaciones que en conjunto
// sobregirarían el stock, solo una hace commit.
func applyOne(
	entries repository.StockEntryRepository,
	products repository.ProductRepository,
	op Operation,
) (*entity.StockEntry, error) {
	product, err := products.GetForUpdate(op.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Kind: "producto", ID: op.ProductID}
	}

	current, err := entries.CurrentBalance(op.ProductID)
	if err != nil {
		return nil, err
	}
	newBalance := current + op.Change
	if newBalance < 0 {
		required := -op.Change
		return nil, &domain.InsufficientStockError{
			ProductID: op.ProductID,
			Available: current,
			Required:  required,
		}
	}

	entry := entity.NewStockEntry(op.ProductID, op.Change, op.SourceType, op.SourceID, op.Note, newBalance)
	if err := entries.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// dedupeProductIDs devuelve los productos tocados sin repetidos,
// preservando el orden.
func dedupeProductIDs(ops []Operation) []string {
	seen := make(map[string]struct{}, len(ops))
	ids := make([]string, 0, len(ops))
	for _, op := range ops {
		if _, ok := seen[op.ProductID]; ok {
			continue
		}
		seen[op.ProductID] = struct{}{}
		ids = append(ids, op.ProductID)
	}
	return ids
}
