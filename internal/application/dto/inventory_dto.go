package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRequest body para POST /api/inventory.
type CreateInventoryRequest struct {
	ProductID    string `json:"product_id" validate:"required,max=64"`
	ReorderLevel int    `json:"reorder_level" validate:"required,gt=0"`
	MaxCapacity  int    `json:"max_capacity" validate:"required,gt=0"`
	Location     string `json:"location" validate:"max=120"`
}

// CreateFromProductRequest body para POST /api/inventory/from-product.
type CreateFromProductRequest struct {
	ProductID    string `json:"product_id" validate:"required,max=64"`
	ProductName  string `json:"product_name" validate:"required,max=200"`
	InitialStock int    `json:"initial_stock" validate:"min=0"`
}

// StockQuantityRequest body para restock / reduce (cantidad siempre positiva).
type StockQuantityRequest struct {
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
	PerformedBy string `json:"performed_by" validate:"max=120"`
}

// ApplyDeltaRequest body para POST /api/inventory/:productId/transactions.
// Quantity es el delta con signo: negativo para SALE/DAMAGED, positivo para RESTOCK/RETURNED.
type ApplyDeltaRequest struct {
	Type        string `json:"type" validate:"required,oneof=RESTOCK SALE DAMAGED RETURNED"`
	Quantity    int    `json:"quantity" validate:"required"`
	PerformedBy string `json:"performed_by" validate:"max=120"`
	Notes       string `json:"notes" validate:"max=500"`
}

// UpdateReorderLevelRequest body para PUT /api/inventory/:productId/reorder-level.
type UpdateReorderLevelRequest struct {
	ReorderLevel int `json:"reorder_level" validate:"required,gt=0"`
}

// UpdateConsumptionRequest body para PUT /api/inventory/:productId/consumption.
type UpdateConsumptionRequest struct {
	AverageDailyConsumption decimal.Decimal `json:"average_daily_consumption"`
}

// InventoryResponse salida de un registro de inventario.
type InventoryResponse struct {
	ProductID               string           `json:"product_id"`
	ProductName             string           `json:"product_name"`
	CurrentStock            int              `json:"current_stock"`
	ReorderLevel            int              `json:"reorder_level"`
	MaxCapacity             int              `json:"max_capacity"`
	Location                string           `json:"location"`
	AverageDailyConsumption *decimal.Decimal `json:"average_daily_consumption,omitempty"`
	LastRestocked           *time.Time       `json:"last_restocked,omitempty"`
	LowStock                bool             `json:"low_stock"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

// InventoryListResponse lista paginada de registros.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// StockUpdateResponse resultado de un movimiento aceptado por el ledger.
type StockUpdateResponse struct {
	ProductID     string `json:"product_id"`
	TransactionID string `json:"transaction_id"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Message       string `json:"message"`
}

// StockTransactionResponse fila del ledger.
type StockTransactionResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Timestamp     time.Time `json:"timestamp"`
	PerformedBy   string    `json:"performed_by"`
	Notes         string    `json:"notes"`
}

// StockoutResponse proyección de días hasta agotar stock.
type StockoutResponse struct {
	ProductID         string          `json:"product_id"`
	CurrentStock      int             `json:"current_stock"`
	DaysUntilStockout int             `json:"days_until_stockout"` // 999 = sin consumo
	DailySalesRate    decimal.Decimal `json:"daily_sales_rate"`
}
