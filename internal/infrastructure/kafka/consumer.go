package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

var tracer = otel.Tracer("supplychain-inventory/kafka")

// ErrMalformed payload que no se pudo decodificar; el mensaje se descarta.
var ErrMalformed = errors.New("mensaje mal formado")

// HandlerFunc procesa el valor de un mensaje ya extraído el contexto de traza.
type HandlerFunc func(ctx context.Context, value []byte) error

// ProductEventHandler lo que el consumidor de product-events necesita.
type ProductEventHandler interface {
	Handle(ctx context.Context, ev entity.ProductEvent) error
}

// OrderEventHandler lo que el consumidor de order-events necesita.
type OrderEventHandler interface {
	Handle(ctx context.Context, ev entity.OrderEvent) error
}

// ProductEvents decodifica ProductEvent JSON y delega en h.
func ProductEvents(h ProductEventHandler) HandlerFunc {
	return func(ctx context.Context, value []byte) error {
		var ev entity.ProductEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return h.Handle(ctx, ev)
	}
}

// OrderEvents decodifica OrderEvent JSON y delega en h.
func OrderEvents(h OrderEventHandler) HandlerFunc {
	return func(ctx context.Context, value []byte) error {
		var ev entity.OrderEvent
		if err := json.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return h.Handle(ctx, ev)
	}
}

// Consumer bucle de lectura de un tópico. Los errores de procesamiento se registran y el
// mensaje se da por consumido (at-most-once); nada detiene el bucle salvo la cancelación del contexto.
type Consumer struct {
	reader       MessageReader
	topic        string
	handle       HandlerFunc
	log          *logger.Logger
	retryBackoff time.Duration
}

// NewConsumer construye el consumidor de un tópico.
func NewConsumer(reader MessageReader, topic string, handle HandlerFunc, log *logger.Logger) *Consumer {
	return &Consumer{
		reader:       reader,
		topic:        topic,
		handle:       handle,
		log:          log.Component("kafka-consumer"),
		retryBackoff: time.Second,
	}
}

// Run lee mensajes hasta que ctx se cancele. Cierra el reader al salir.
func (c *Consumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.log.Error().Err(err).Str("topic", c.topic).Msg("error cerrando reader")
		}
	}()
	c.log.Info().Str("topic", c.topic).Msg("consumidor iniciado")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.log.Info().Str("topic", c.topic).Msg("consumidor detenido")
				return nil
			}
			c.log.Error().Err(err).Str("topic", c.topic).Msg("error leyendo de Kafka")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.retryBackoff):
			}
			continue
		}
		c.process(ctx, msg)
	}
}

func (c *Consumer) process(ctx context.Context, msg *kafka.Message) {
	msgCtx := extractTraceContext(ctx, msg.Headers)
	msgCtx, span := tracer.Start(msgCtx, "consume "+c.topic)
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.destination.name", c.topic),
		attribute.Int("messaging.kafka.partition", msg.Partition),
		attribute.Int64("messaging.kafka.offset", msg.Offset),
	)

	if err := c.handle(msgCtx, msg.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log := c.log.Ctx(msgCtx)
		ev := log.Error()
		if errors.Is(err, ErrMalformed) {
			ev = log.Warn()
		}
		ev.Err(err).
			Str("topic", c.topic).
			Bytes("key", msg.Key).
			Int64("offset", msg.Offset).
			Msg("mensaje descartado")
		return
	}
	span.SetStatus(codes.Ok, "processed")
}

// extractTraceContext recupera el contexto de traza W3C de los headers del mensaje.
func extractTraceContext(ctx context.Context, headers []kafka.Header) context.Context {
	carrier := propagation.MapCarrier{}
	for _, h := range headers {
		carrier[h.Key] = string(h.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
