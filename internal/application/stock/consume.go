package stock

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ConsumeResult es el resultado del consumo de una orden: las salidas de
// materiales, la entrada del producto terminado y la orden ya en DONE.
type ConsumeResult struct {
	Consumed []*entity.StockEntry
	Produced *entity.StockEntry
	Order    *entity.ManufacturingOrder
}

// ConsumeOrderUseCase orquesta el cierre de una orden de fabricación:
// verifica suficiencia de materiales contra el snapshot congelado de BOM,
// consume los componentes y produce el terminado de forma atómica junto con
// la transición IN_PROGRESS→DONE de la orden.
type ConsumeOrderUseCase struct {
	txRunner TxRunner
	notifier *LowStockNotifier
}

// NewConsumeOrderUseCase construye el caso de uso.
func NewConsumeOrderUseCase(txRunner TxRunner, notifier *LowStockNotifier) *ConsumeOrderUseCase {
	return &ConsumeOrderUseCase{txRunner: txRunner, notifier: notifier}
}

// Consume completa la orden en una sola transacción:
//
//  1. Carga y bloquea la orden; rechaza si no existe, si no está en
//     IN_PROGRESS, si no tiene snapshot de BOM o si el snapshot trae
//     cantidades no positivas.
//  2. Pre-chequeo EXHAUSTIVO: calcula requerido vs. disponible para TODOS
//     los componentes antes de escribir nada; ante cualquier faltante falla
//     con InsufficientStockError llevando el detalle completo.
//  3. Escribe una salida por componente (MO_CONSUMPTION), la entrada del
//     terminado (MO_PRODUCTION) y la transición a DONE como unidad atómica.
//
// El consumo se calcula contra order.BOMSnapshot, nunca contra el BOM vivo:
// editar la fórmula del catálogo después de iniciar la orden no cambia lo
// que esta consume. Tras el commit se evalúa stock bajo solo para los
// materiales consumidos (producir solo incrementa stock).
func (uc *ConsumeOrderUseCase) Consume(ctx context.Context, orderID string) (*ConsumeResult, error) {
	if orderID == "" {
		return nil, &domain.ValidationError{Field: "order_id", Reason: "requerido"}
	}

	var result ConsumeResult
	err := uc.txRunner.Run(ctx, func(
		entries repository.StockEntryRepository,
		products repository.ProductRepository,
		orders repository.OrderRepository,
	) error {
		order, err := orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.NotFoundError{Kind: "orden", ID: orderID}
		}
		if order.State != entity.OrderStateInProgress {
			return &domain.InvalidStateError{
				OrderID:  orderID,
				Current:  order.State,
				Expected: entity.OrderStateInProgress,
			}
		}
		if len(order.BOMSnapshot) == 0 {
			return &domain.MissingBOMError{OrderID: orderID}
		}
		// El snapshot llega congelado desde el módulo de órdenes, pero
		// nunca se ejecuta sin verificar: cantidades no positivas
		// producirían consumos que suman stock o entradas de cambio cero.
		if order.Quantity <= 0 {
			return &domain.ValidationError{Field: "quantity", Reason: "la cantidad de la orden debe ser positiva"}
		}
		if err := order.BOMSnapshot.Validate(); err != nil {
			return err
		}

		// Bloquear todos los productos involucrados en orden determinista
		// (materiales + terminado) antes de leer balances: mismas filas,
		// mismo orden de locks para cualquier transacción concurrente.
		if err := lockProducts(products, order); err != nil {
			return err
		}

		// Pre-chequeo exhaustivo de faltantes sobre el snapshot congelado.
		shortages := make([]domain.Shortage, 0, len(order.BOMSnapshot))
		for _, comp := range order.BOMSnapshot {
			available, err := entries.CurrentBalance(comp.MaterialID)
			if err != nil {
				return err
			}
			shortages = append(shortages, domain.Shortage{
				ProductID:   comp.MaterialID,
				ProductName: comp.MaterialName,
				SKU:         comp.MaterialSKU,
				Required:    order.RequiredFor(comp),
				Available:   available,
			})
		}
		for _, s := range shortages {
			if s.Short() {
				return &domain.InsufficientStockError{
					ProductID: s.ProductID,
					Available: s.Available,
					Required:  s.Required,
					Detail:    shortages,
				}
			}
		}

		// Consumir componentes y producir el terminado.
		consumed := make([]*entity.StockEntry, 0, len(order.BOMSnapshot))
		for _, comp := range order.BOMSnapshot {
			entry, err := applyOne(entries, products, Operation{
				ProductID:  comp.MaterialID,
				Change:     -order.RequiredFor(comp),
				SourceType: entity.SourceMOConsumption,
				SourceID:   order.ID,
			})
			if err != nil {
				return err
			}
			consumed = append(consumed, entry)
		}
		produced, err := applyOne(entries, products, Operation{
			ProductID:  order.ProductID,
			Change:     order.Quantity,
			SourceType: entity.SourceMOProduction,
			SourceID:   order.ID,
		})
		if err != nil {
			return err
		}

		now := time.Now()
		order.State = entity.OrderStateDone
		order.CompletedAt = &now
		if err := orders.UpdateState(order); err != nil {
			return err
		}

		result = ConsumeResult{Consumed: consumed, Produced: produced, Order: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Solo materiales consumidos: producir nunca baja un balance.
	materialIDs := make([]string, 0, len(result.Consumed))
	for _, e := range result.Consumed {
		materialIDs = append(materialIDs, e.ProductID)
	}
	uc.notifier.Notify(ctx, materialIDs...)
	return &result, nil
}

// lockProducts toma el lock de fila de cada producto involucrado en la
// orden, en orden ascendente de ID, verificando existencia.
func lockProducts(products repository.ProductRepository, order *entity.ManufacturingOrder) error {
	ids := make([]string, 0, len(order.BOMSnapshot)+1)
	seen := make(map[string]struct{}, len(order.BOMSnapshot)+1)
	for _, comp := range order.BOMSnapshot {
		if _, ok := seen[comp.MaterialID]; !ok {
			seen[comp.MaterialID] = struct{}{}
			ids = append(ids, comp.MaterialID)
		}
	}
	if _, ok := seen[order.ProductID]; !ok {
		ids = append(ids, order.ProductID)
	}
	sort.Strings(ids)

	for _, id := range ids {
		product, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.NotFoundError{Kind: "producto", ID: id}
		}
	}
	return nil
}
