// Package kafka conecta el servicio con el bus de eventos: publica inventory-events y consume
// product-events / order-events. Los readers y writers de kafka-go se envuelven con
// otel-kafka-konsumer para propagar el contexto de traza en los headers.
package kafka

import (
	"context"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/supplychain-inventory/pkg/config"
)

// MessageWriter lo que el publicador necesita de un writer (otelkafka.Writer o un fake en tests).
type MessageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// MessageReader lo que el consumidor necesita de un reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (*kafka.Message, error)
	Close() error
}

// NewWriter crea el writer instrumentado para el tópico de eventos de inventario.
func NewWriter(cfg config.KafkaConfig, clientID string, tp trace.TracerProvider) (*otelkafka.Writer, error) {
	baseWriter := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.InventoryTopic,
		Balancer:     &kafka.Hash{}, // misma clave (productId) → misma partición
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		RequiredAcks: kafka.RequireOne,
	}
	return otelkafka.NewWriter(baseWriter,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(cfg.InventoryTopic),
				attribute.String("messaging.kafka.client_id", clientID),
			},
		),
	)
}

// NewReader crea el reader instrumentado de un tópico, dentro del consumer group configurado.
// Usa el TracerProvider y el propagador globales de otel.
func NewReader(cfg config.KafkaConfig, topic string) (*otelkafka.Reader, error) {
	baseReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return otelkafka.NewReader(baseReader)
}
