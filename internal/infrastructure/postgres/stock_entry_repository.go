package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación del ledger sobre PostgreSQL (usable con pool
// o tx). La tabla stock_entries es append-only: este adaptador no expone
// UPDATE ni DELETE.
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create persiste una entrada del ledger. Asigna ID y deja que la BD asigne
// seq (bigserial) y created_at.
func (r *StockEntryRepo) Create(entry *entity.StockEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_entries (id, product_id, change, type, quantity, source_type, source_id, balance_after, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq, created_at`
	sourceID := (*string)(nil)
	if entry.SourceID != "" {
		sourceID = &entry.SourceID
	}
	note := (*string)(nil)
	if entry.Note != "" {
		note = &entry.Note
	}
	err := r.q.QueryRow(context.Background(), query,
		entry.ID, entry.ProductID, entry.Change, entry.Type, entry.Quantity,
		string(entry.SourceType), sourceID, entry.BalanceAfter, note,
	).Scan(&entry.Seq, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create stock entry: %w", err)
	}
	return nil
}

// CurrentBalance devuelve el balance_after de la entrada más reciente del
// producto, o 0 si no tiene entradas. Dentro de una tx que ya bloqueó la
// fila del producto, esta lectura es parte de la sección crítica.
func (r *StockEntryRepo) CurrentBalance(productID string) (int64, error) {
	query := `
		SELECT balance_after FROM stock_entries
		WHERE product_id = $1
		ORDER BY seq DESC LIMIT 1`
	var balance int64
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("current balance: %w", err)
	}
	return balance, nil
}

// GetByID obtiene una entrada por ID. Devuelve nil si no existe.
func (r *StockEntryRepo) GetByID(id string) (*entity.StockEntry, error) {
	query := `
		SELECT id, seq, product_id, change, type, quantity, source_type, source_id, balance_after, note, created_at
		FROM stock_entries WHERE id = $1`
	entry, err := scanEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	return entry, nil
}

// ListByProduct lista las entradas de un producto, más recientes primero.
func (r *StockEntryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, seq, product_id, change, type, quantity, source_type, source_id, balance_after, note, created_at
		FROM stock_entries WHERE product_id = $1
		ORDER BY seq DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

func scanEntry(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	var sourceType string
	var sourceID, note *string
	if err := row.Scan(&e.ID, &e.Seq, &e.ProductID, &e.Change, &e.Type, &e.Quantity,
		&sourceType, &sourceID, &e.BalanceAfter, &note, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.SourceType = entity.SourceType(sourceType)
	if sourceID != nil {
		e.SourceID = *sourceID
	}
	if note != nil {
		e.Note = *note
	}
	return &e, nil
}
