package recommendation

import (
	"context"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

// OrderEventHandler alimenta el PopularityTracker con los eventos del servicio de órdenes.
// El stock no se toca aquí: las ventas entran por el ledger.
type OrderEventHandler struct {
	tracker *PopularityTracker
	log     *logger.Logger
}

// NewOrderEventHandler construye el handler.
func NewOrderEventHandler(tracker *PopularityTracker, log *logger.Logger) *OrderEventHandler {
	return &OrderEventHandler{tracker: tracker, log: log}
}

// Handle procesa un evento de orden.
func (h *OrderEventHandler) Handle(_ context.Context, ev entity.OrderEvent) error {
	switch ev.EventType {
	case entity.OrderEventCreated:
		if ev.ProductID == "" || ev.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		h.tracker.Track(ev.ProductID, ev.Quantity)
	case entity.OrderEventConfirmed, entity.OrderEventCancelled:
		h.log.Info().Str("order_id", ev.OrderID).Str("event_type", ev.EventType).Msg("evento de orden recibido")
	default:
		h.log.Warn().Str("order_id", ev.OrderID).Str("event_type", ev.EventType).Msg("tipo de evento de orden desconocido")
	}
	return nil
}
