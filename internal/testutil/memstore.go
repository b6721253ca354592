// Package testutil provee dobles en memoria del storage para tests del
// motor de stock: repositorios que implementan los puertos del dominio y un
// TxRunner con semántica de commit/rollback real (staging + merge).
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// MemStore es un storage en memoria. Run serializa las transacciones con un
// mutex (equivalente de aislamiento serializable por producto): el callback
// trabaja sobre una copia y solo ante éxito se hace merge al estado real,
// igual que Commit/Rollback en PostgreSQL.
type MemStore struct {
	mu       sync.Mutex
	products map[string]entity.Product
	orders   map[string]entity.ManufacturingOrder
	entries  []entity.StockEntry
	seq      int64
}

// NewMemStore construye el store vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		products: make(map[string]entity.Product),
		orders:   make(map[string]entity.ManufacturingOrder),
	}
}

// SeedProduct agrega un producto del catálogo.
func (m *MemStore) SeedProduct(p entity.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

// SeedOrder agrega una orden de fabricación.
func (m *MemStore) SeedOrder(o entity.ManufacturingOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
}

// SeedBalance inyecta una entrada INITIAL_STOCK para dejar el producto con
// el balance dado.
func (m *MemStore) SeedBalance(productID string, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	entry := entity.NewStockEntry(productID, balance, entity.SourceInitialStock, "", "carga inicial", balance)
	entry.ID = uuid.New().String()
	entry.Seq = m.seq
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
}

// EntriesFor devuelve las entradas persistidas de un producto, en orden de
// escritura.
func (m *MemStore) EntriesFor(productID string) []entity.StockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.StockEntry
	for _, e := range m.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out
}

// Order devuelve la orden persistida.
func (m *MemStore) Order(id string) entity.ManufacturingOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id]
}

// UpdateProduct reemplaza un producto (simula ediciones del catálogo).
func (m *MemStore) UpdateProduct(p entity.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

// ─────────────────────────────────────────────────────────────────────────
// TxRunner
// ─────────────────────────────────────────────────────────────────────────

// Run implementa stock.TxRunner: clona el estado, ejecuta fn contra la
// copia y ante éxito hace merge (commit); ante error descarta todo
// (rollback). El mutex serializa transacciones concurrentes.
func (m *MemStore) Run(_ context.Context, fn func(
	entries repository.StockEntryRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &txState{store: m}
	staged.orders = make(map[string]entity.ManufacturingOrder, len(m.orders))
	for id, o := range m.orders {
		staged.orders[id] = o
	}
	staged.entries = make([]entity.StockEntry, len(m.entries))
	copy(staged.entries, m.entries)
	staged.seq = m.seq

	if err := fn(&memEntryRepo{tx: staged}, &memProductRepo{store: m, locked: true}, &memOrderRepo{tx: staged}); err != nil {
		return err
	}

	// Commit
	m.entries = staged.entries
	m.orders = staged.orders
	m.seq = staged.seq
	return nil
}

// txState es el estado staged de una transacción en curso.
type txState struct {
	store   *MemStore
	entries []entity.StockEntry
	orders  map[string]entity.ManufacturingOrder
	seq     int64
}

// ─────────────────────────────────────────────────────────────────────────
// Repositorios atados al pool (lecturas post-commit)
// ─────────────────────────────────────────────────────────────────────────

// EntryRepo devuelve un StockEntryRepository de solo lectura sobre el
// estado persistido (para el notificador y las queries).
func (m *MemStore) EntryRepo() repository.StockEntryRepository {
	return &poolEntryRepo{store: m}
}

// ProductRepo devuelve un ProductRepository sobre el estado persistido.
func (m *MemStore) ProductRepo() repository.ProductRepository {
	return &memProductRepo{store: m}
}

// OrderRepo devuelve un OrderRepository sobre el estado persistido.
func (m *MemStore) OrderRepo() repository.OrderRepository {
	return &poolOrderRepo{store: m}
}

// ─────────────────────────────────────────────────────────────────────────
// Implementaciones
// ─────────────────────────────────────────────────────────────────────────

type memEntryRepo struct{ tx *txState }

func (r *memEntryRepo) Create(entry *entity.StockEntry) error {
	r.tx.seq++
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.Seq = r.tx.seq
	entry.CreatedAt = time.Now()
	r.tx.entries = append(r.tx.entries, *entry)
	return nil
}

func (r *memEntryRepo) CurrentBalance(productID string) (int64, error) {
	return lastBalance(r.tx.entries, productID), nil
}

func (r *memEntryRepo) GetByID(id string) (*entity.StockEntry, error) {
	for i := range r.tx.entries {
		if r.tx.entries[i].ID == id {
			e := r.tx.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (r *memEntryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockEntry, error) {
	return listByProduct(r.tx.entries, productID, limit, offset), nil
}

type poolEntryRepo struct{ store *MemStore }

func (r *poolEntryRepo) Create(entry *entity.StockEntry) error {
	panic("poolEntryRepo es de solo lectura: las escrituras van por TxRunner")
}

func (r *poolEntryRepo) CurrentBalance(productID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return lastBalance(r.store.entries, productID), nil
}

func (r *poolEntryRepo) GetByID(id string) (*entity.StockEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.entries {
		if r.store.entries[i].ID == id {
			e := r.store.entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (r *poolEntryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return listByProduct(r.store.entries, productID, limit, offset), nil
}

type memProductRepo struct {
	store  *MemStore
	locked bool // true dentro de una tx (el mutex ya está tomado)
}

func (r *memProductRepo) get(id string) (*entity.Product, error) {
	if !r.locked {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error)      { return r.get(id) }
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.get(id) }

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	if !r.locked {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	var out []*entity.Product
	for id := range r.store.products {
		p := r.store.products[id]
		out = append(out, &p)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock(limit, offset int) ([]*repository.ProductBalance, error) {
	if !r.locked {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	var out []*repository.ProductBalance
	for id := range r.store.products {
		p := r.store.products[id]
		balance := lastBalance(r.store.entries, id)
		if balance <= p.MinStockAlert {
			out = append(out, &repository.ProductBalance{Product: p, Balance: balance})
		}
	}
	return out, nil
}

type memOrderRepo struct{ tx *txState }

func (r *memOrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	o, ok := r.tx.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	return r.GetByID(id)
}

func (r *memOrderRepo) UpdateState(order *entity.ManufacturingOrder) error {
	o := r.tx.orders[order.ID]
	o.State = order.State
	o.CompletedAt = order.CompletedAt
	o.UpdatedAt = time.Now()
	r.tx.orders[order.ID] = o
	return nil
}

type poolOrderRepo struct{ store *MemStore }

func (r *poolOrderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *poolOrderRepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	return r.GetByID(id)
}

func (r *poolOrderRepo) UpdateState(order *entity.ManufacturingOrder) error {
	panic("poolOrderRepo es de solo lectura: las escrituras van por TxRunner")
}

func lastBalance(entries []entity.StockEntry, productID string) int64 {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].ProductID == productID {
			return entries[i].BalanceAfter
		}
	}
	return 0
}

func listByProduct(entries []entity.StockEntry, productID string, limit, offset int) []*entity.StockEntry {
	// Más recientes primero, como el adaptador PostgreSQL.
	var all []*entity.StockEntry
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].ProductID == productID {
			e := entries[i]
			all = append(all, &e)
		}
	}
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
