package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecommendationDTO sugerencia de reposición para un producto.
type StockRecommendationDTO struct {
	ProductID           string          `json:"product_id"`
	ProductName         string          `json:"product_name"`
	CurrentStock        int             `json:"current_stock"`
	ReorderLevel        int             `json:"reorder_level"`
	MaxCapacity         int             `json:"max_capacity"`
	RecommendedQuantity int             `json:"recommended_quantity"` // MaxCapacity - CurrentStock
	UrgencyLevel        string          `json:"urgency_level"`        // CRITICAL | HIGH | MEDIUM
	SupplierID          string          `json:"supplier_id,omitempty"`
	SupplierName        string          `json:"supplier_name,omitempty"`
	DaysUntilStockout   int             `json:"days_until_stockout"`
	DailySalesRate      decimal.Decimal `json:"daily_sales_rate"`
}

// RecommendationListResponse respuesta de las consultas por umbral.
type RecommendationListResponse struct {
	Threshold       decimal.Decimal          `json:"threshold"`
	Total           int                      `json:"total"`
	Recommendations []StockRecommendationDTO `json:"recommendations"`
}

// PopularProductDTO unidades pedidas por producto desde el arranque del proceso.
type PopularProductDTO struct {
	ProductID    string `json:"product_id"`
	OrderedUnits int    `json:"ordered_units"`
	OrderEvents  int    `json:"order_events"`
}

// RecommendationReport datos del reporte de sugerencias de compra (PDF / XLSX).
type RecommendationReport struct {
	Title           string
	GeneratedAt     time.Time
	Threshold       decimal.Decimal
	Recommendations []StockRecommendationDTO
}
