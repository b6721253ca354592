package stock

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock:
// o se persisten todas las escrituras del callback, o ninguna. Todas las
// lecturas del callback ocurren bajo los locks tomados en la misma tx, no
// como queries independientes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entries repository.StockEntryRepository,
		products repository.ProductRepository,
		orders repository.OrderRepository,
	) error) error
}

// AlertPublisher es el puerto hacia el sink de notificaciones externo.
// Se inyecta (nunca singleton) para mantener el motor testeable; el mecanismo
// de entrega (push/poll/webhook) queda fuera del core.
type AlertPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
