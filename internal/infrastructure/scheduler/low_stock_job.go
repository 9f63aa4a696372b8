// Package scheduler ejecuta tareas periódicas con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

// RecommendationSource genera las sugerencias con el umbral por defecto.
type RecommendationSource interface {
	Default(ctx context.Context) ([]entity.StockRecommendation, error)
}

// LowStockJob escanea el inventario y publica un LOW_STOCK_ALERT por producto bajo el umbral.
type LowStockJob struct {
	source    RecommendationSource
	publisher ports.EventPublisher
	log       *logger.Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewLowStockJob construye el job.
func NewLowStockJob(source RecommendationSource, publisher ports.EventPublisher, log *logger.Logger) *LowStockJob {
	return &LowStockJob{
		source:    source,
		publisher: publisher,
		log:       log.Component("low-stock-scan"),
		timeout:   2 * time.Minute,
		now:       time.Now,
	}
}

// RunOnce ejecuta un escaneo y devuelve cuántas alertas se publicaron.
func (j *LowStockJob) RunOnce(ctx context.Context) (int, error) {
	recs, err := j.source.Default(ctx)
	if err != nil {
		return 0, fmt.Errorf("escaneo de stock bajo: %w", err)
	}
	ts := j.now().UTC()
	for _, r := range recs {
		j.publisher.PublishInventoryEvent(ctx, entity.InventoryEvent{
			EventType: entity.InventoryEventLowStockAlert,
			ProductID: r.ProductID,
			Quantity:  r.CurrentStock,
			Threshold: r.ReorderLevel,
			Timestamp: ts,
		})
	}
	return len(recs), nil
}

// Run adapta RunOnce a la firma de cron; los errores solo se registran.
func (j *LowStockJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	n, err := j.RunOnce(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("escaneo fallido")
		return
	}
	j.log.Info().Int("alerts", n).Dur("elapsed", time.Since(start)).Msg("escaneo completado")
}

// Scheduler envuelve cron.Cron. Un job no se solapa consigo mismo.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
	once sync.Once
}

// New construye el scheduler (sin iniciar).
func New(log *logger.Logger) *Scheduler {
	l := log.Component("scheduler")
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cronLogger{l}), cron.SkipIfStillRunning(cronLogger{l}))),
		log:  l,
	}
}

// Add registra un job con una expresión cron (ej. "@every 15m", "0 */2 * * *").
func (s *Scheduler) Add(name, schedule string, job cron.Job) error {
	if _, err := s.cron.AddJob(schedule, job); err != nil {
		return fmt.Errorf("registrar job %s: %w", name, err)
	}
	s.log.Info().Str("job", name).Str("schedule", schedule).Msg("job registrado")
	return nil
}

// Start inicia el scheduler en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el scheduler y espera a los jobs en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.once.Do(func() {
		done := s.cron.Stop()
		select {
		case <-done.Done():
		case <-ctx.Done():
			s.log.Warn().Msg("jobs en curso no terminaron antes del cierre")
		}
	})
}

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct{ log *logger.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
