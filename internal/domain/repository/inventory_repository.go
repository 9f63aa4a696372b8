package repository

import (
	"context"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia de InventoryRecord.
// Usado dentro de transacciones para garantizar consistencia con el ledger.
type InventoryRepository interface {
	Create(ctx context.Context, record *entity.InventoryRecord) error
	// GetByProductID devuelve (nil, nil) si no existe.
	GetByProductID(ctx context.Context, productID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Devuelve (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, productID string) (*entity.InventoryRecord, error)
	Update(ctx context.Context, record *entity.InventoryRecord) error
	// List pagina por product_id; page empieza en 0.
	List(ctx context.Context, page, pageSize int) ([]*entity.InventoryRecord, error)
	// ListLowStock devuelve los registros con stock <= punto de reorden.
	ListLowStock(ctx context.Context) ([]*entity.InventoryRecord, error)
}
