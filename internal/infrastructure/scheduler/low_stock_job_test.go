package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

type staticSource struct {
	recs []entity.StockRecommendation
	err  error
}

func (s staticSource) Default(context.Context) ([]entity.StockRecommendation, error) {
	return s.recs, s.err
}

type capturePublisher struct {
	mu     sync.Mutex
	events []entity.InventoryEvent
}

func (p *capturePublisher) PublishInventoryEvent(_ context.Context, ev entity.InventoryEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func TestLowStockJob_UnaAlertaPorRecomendacion(t *testing.T) {
	pub := &capturePublisher{}
	src := staticSource{recs: []entity.StockRecommendation{
		{ProductID: "a", CurrentStock: 2, ReorderLevel: 50},
		{ProductID: "b", CurrentStock: 0, ReorderLevel: 5},
	}}
	job := NewLowStockJob(src, pub, logger.Nop())
	fixed := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	n, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, pub.events, 2)
	assert.Equal(t, entity.InventoryEventLowStockAlert, pub.events[0].EventType)
	assert.Equal(t, "a", pub.events[0].ProductID)
	assert.Equal(t, 2, pub.events[0].Quantity)
	assert.Equal(t, 50, pub.events[0].Threshold)
	assert.True(t, pub.events[1].Timestamp.Equal(fixed))
}

func TestLowStockJob_ErrorNoPublica(t *testing.T) {
	pub := &capturePublisher{}
	job := NewLowStockJob(staticSource{err: errors.New("db caída")}, pub, logger.Nop())

	_, err := job.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Empty(t, pub.events)

	assert.NotPanics(t, job.Run)
}

func TestScheduler_ExpresionInvalida(t *testing.T) {
	s := New(logger.Nop())
	err := s.Add("low-stock", "cada rato", NewLowStockJob(staticSource{}, &capturePublisher{}, logger.Nop()))
	assert.Error(t, err)
}

func TestScheduler_EjecutaJobProgramado(t *testing.T) {
	pub := &capturePublisher{}
	s := New(logger.Nop())
	job := NewLowStockJob(staticSource{recs: []entity.StockRecommendation{{ProductID: "a"}}}, pub, logger.Nop())
	require.NoError(t, s.Add("low-stock", "@every 1s", job))

	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return len(pub.events) > 0
	}, 3*time.Second, 50*time.Millisecond)
}
