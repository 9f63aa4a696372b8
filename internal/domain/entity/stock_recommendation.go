package entity

import "github.com/shopspring/decimal"

// Niveles de urgencia de reposición.
const (
	UrgencyCritical = "CRITICAL"
	UrgencyHigh     = "HIGH"
	UrgencyMedium   = "MEDIUM"
)

// StockRecommendation vista derivada de un InventoryRecord; no se persiste, se recalcula en cada consulta.
type StockRecommendation struct {
	ProductID           string
	ProductName         string
	CurrentStock        int
	ReorderLevel        int
	MaxCapacity         int
	RecommendedQuantity int
	UrgencyLevel        string
	SupplierID          string // vacío si el directorio de productos no respondió
	SupplierName        string
	DaysUntilStockout   int
	DailySalesRate      decimal.Decimal
}
