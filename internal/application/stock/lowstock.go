package stock

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// TopicLowStock es el tópico al que se publican las alertas de stock bajo.
const TopicLowStock = "alerts.stock.low"

// lowStockAudience son los roles destinatarios de la alerta.
var lowStockAudience = []string{"inventario", "gerencia", "admin"}

// LowStockEvent es el evento publicado cuando un balance queda en o por
// debajo del umbral configurado del producto.
type LowStockEvent struct {
	ProductID     string   `json:"product_id"`
	ProductName   string   `json:"product_name"`
	SKU           string   `json:"sku"`
	CurrentStock  int64    `json:"current_stock"`
	MinStockLevel int64    `json:"min_stock_level"`
	Audience      []string `json:"audience"`
}

// LowStockNotifier evalúa productos tras un commit y publica alertas de
// stock bajo al sink externo. Es estrictamente best-effort: cualquier fallo
// de lectura o publicación se loguea y se suprime; jamás falla ni revierte
// la mutación de stock que lo disparó. Se alerta en cada operación que
// califique mientras el balance siga bajo el umbral (el dedup/rate-limit es
// responsabilidad del sink).
type LowStockNotifier struct {
	products  repository.ProductRepository
	entries   repository.StockEntryRepository
	publisher AlertPublisher
	log       *logger.Logger
}

// NewLowStockNotifier construye el notificador. Los repositorios van atados
// al pool (las lecturas ocurren después del commit, fuera de la tx).
func NewLowStockNotifier(
	products repository.ProductRepository,
	entries repository.StockEntryRepository,
	publisher AlertPublisher,
	log *logger.Logger,
) *LowStockNotifier {
	return &LowStockNotifier{products: products, entries: entries, publisher: publisher, log: log}
}

// Notify revisa cada producto y publica un LowStockEvent si su balance
// actual es <= su umbral. Sin publisher configurado la alerta se deja solo
// en el log. Nunca retorna error.
func (n *LowStockNotifier) Notify(ctx context.Context, productIDs ...string) {
	if n == nil || (n.publisher == nil && n.log == nil) {
		return
	}
	for _, id := range productIDs {
		n.check(ctx, id)
	}
}

func (n *LowStockNotifier) check(ctx context.Context, productID string) {
	product, err := n.products.GetByID(productID)
	if err != nil || product == nil {
		n.logWarn(productID, err)
		return
	}
	balance, err := n.entries.CurrentBalance(productID)
	if err != nil {
		n.logWarn(productID, err)
		return
	}
	if balance > product.MinStockAlert {
		return
	}

	event := LowStockEvent{
		ProductID:     product.ID,
		ProductName:   product.Name,
		SKU:           product.SKU,
		CurrentStock:  balance,
		MinStockLevel: product.MinStockAlert,
		Audience:      lowStockAudience,
	}
	if n.publisher == nil {
		if n.log != nil {
			n.log.Warn().
				Str("product_id", event.ProductID).
				Str("sku", event.SKU).
				Int64("current_stock", event.CurrentStock).
				Int64("min_stock_level", event.MinStockLevel).
				Msg("stock bajo (sin sink de alertas configurado)")
		}
		return
	}
	if err := n.publisher.Publish(ctx, TopicLowStock, event); err != nil {
		n.logWarn(productID, err)
	}
}

func (n *LowStockNotifier) logWarn(productID string, err error) {
	if n.log == nil {
		return
	}
	n.log.Warn().Err(err).Str("product_id", productID).Msg("alerta de stock bajo no publicada")
}
