package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/application/stock"
	"github.com/redis/go-redis/v9"
)

var _ stock.AlertPublisher = (*AlertPublisher)(nil)

// AlertPublisher publica eventos de alerta como JSON en un canal Redis
// (pub/sub). Es un adaptador del puerto stock.AlertPublisher: el consumidor
// (push, webhook, email) vive fuera de este servicio.
type AlertPublisher struct {
	client *redis.Client
}

// NewAlertPublisher construye el adaptador sobre un cliente Redis existente.
func NewAlertPublisher(client *redis.Client) *AlertPublisher {
	return &AlertPublisher{client: client}
}

// NewClient crea el cliente Redis a partir de la configuración.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Publish serializa el evento y lo publica en el canal del tópico.
func (p *AlertPublisher) Publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	if err := p.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("publicar en %s: %w", topic, err)
	}
	return nil
}
