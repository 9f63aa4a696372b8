package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto para registros creados a partir de un evento de producto.
const (
	DefaultReorderLevel = 10
	DefaultMaxCapacity  = 100
	DefaultLocation     = "Warehouse A"
)

// InventoryRecord representa el stock de un producto (una fila por producto).
// Invariante: 0 <= CurrentStock <= MaxCapacity. Solo el ledger modifica CurrentStock.
type InventoryRecord struct {
	ProductID               string
	ProductName             string
	CurrentStock            int
	ReorderLevel            int              // umbral de reposición (> 0)
	MaxCapacity             int              // techo de almacenamiento (> 0)
	Location                string
	AverageDailyConsumption *decimal.Decimal // opcional; nil = calcular desde ventas
	LastRestocked           *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsLowStock indica si el stock está en o por debajo del punto de reorden.
func (r *InventoryRecord) IsLowStock() bool {
	return r.CurrentStock <= r.ReorderLevel
}
