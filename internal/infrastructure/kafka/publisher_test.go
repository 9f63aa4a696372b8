package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

func TestPublishInventoryEvent_ClaveYPayload(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, time.Second, logger.Nop())
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	p.PublishInventoryEvent(context.Background(), entity.InventoryEvent{
		EventType: entity.InventoryEventLowStockAlert,
		ProductID: "p-7",
		Quantity:  3,
		Threshold: 10,
		Timestamp: ts,
	})
	require.NoError(t, p.Close())

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "p-7", string(w.msgs[0].Key))
	assert.True(t, w.closed)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &body))
	assert.Equal(t, "LOW_STOCK_ALERT", body["eventType"])
	assert.Equal(t, "p-7", body["productId"])
	assert.EqualValues(t, 3, body["quantity"])
	assert.EqualValues(t, 10, body["threshold"])
}

func TestPublishInventoryEvent_ContextoCanceladoNoImpideEnvio(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, time.Second, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p.PublishInventoryEvent(ctx, entity.InventoryEvent{EventType: entity.InventoryEventStockUpdated, ProductID: "p-1"})
	require.NoError(t, p.Close())
	assert.Len(t, w.msgs, 1)
}

func TestPublishInventoryEvent_ErrorDelBrokerSeDescarta(t *testing.T) {
	w := &fakeWriter{err: errBoom}
	p := NewPublisher(w, time.Second, logger.Nop())

	assert.NotPanics(t, func() {
		p.PublishInventoryEvent(context.Background(), entity.InventoryEvent{EventType: entity.InventoryEventStockUpdated, ProductID: "p-1"})
	})
	require.NoError(t, p.Close())
	assert.Empty(t, w.msgs)
}

func TestPublish_SincronoDevuelveError(t *testing.T) {
	p := NewPublisher(&fakeWriter{err: errBoom}, time.Second, logger.Nop())
	err := p.Publish(context.Background(), "k", map[string]string{"a": "b"})
	assert.ErrorIs(t, err, errBoom)
}
