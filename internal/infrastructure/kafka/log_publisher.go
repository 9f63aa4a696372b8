package kafka

import (
	"context"

	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher se usa cuando no hay brokers configurados: solo registra el evento.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher construye el publicador de desarrollo.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishInventoryEvent(_ context.Context, event entity.InventoryEvent) {
	p.log.Info().
		Str("event_type", event.EventType).
		Str("product_id", event.ProductID).
		Int("quantity", event.Quantity).
		Int("threshold", event.Threshold).
		Msg("evento de inventario (sin Kafka)")
}
