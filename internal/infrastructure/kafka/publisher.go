package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher publica eventos JSON con clave = productId.
// PublishInventoryEvent es asíncrono y best effort: los errores solo se registran.
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewPublisher construye el publicador. timeout acota cada envío asíncrono.
func NewPublisher(writer MessageWriter, timeout time.Duration, log *logger.Logger) *Publisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{writer: writer, timeout: timeout, log: log}
}

// Publish serializa payload y lo envía de forma síncrona.
func (p *Publisher) Publish(ctx context.Context, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	msg := kafka.Message{Key: []byte(key), Value: value}
	if err := p.writer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("publicar evento: %w", err)
	}
	return nil
}

// PublishInventoryEvent envía el evento en segundo plano. No bloquea a quien llama y
// sobrevive a la cancelación del contexto de la petición (conserva la traza).
func (p *Publisher) PublishInventoryEvent(ctx context.Context, event entity.InventoryEvent) {
	bg := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		sendCtx, cancel := context.WithTimeout(bg, p.timeout)
		defer cancel()
		if err := p.Publish(sendCtx, event.ProductID, event); err != nil {
			p.log.Error().Err(err).
				Str("event_type", event.EventType).
				Str("product_id", event.ProductID).
				Msg("no se pudo publicar el evento de inventario")
			return
		}
		p.log.Debug().Str("event_type", event.EventType).Str("product_id", event.ProductID).Msg("evento publicado")
	}()
}

// Close espera los envíos pendientes y cierra el writer.
func (p *Publisher) Close() error {
	p.wg.Wait()
	return p.writer.Close()
}
