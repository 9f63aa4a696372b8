package ports

import (
	"context"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

// EventPublisher puerto de notificación hacia el bus de eventos.
// Best effort: no devuelve error; el adaptador registra las fallas y las descarta.
// Nunca debe bloquear ni revertir la operación que originó el evento.
type EventPublisher interface {
	PublishInventoryEvent(ctx context.Context, event entity.InventoryEvent)
}
