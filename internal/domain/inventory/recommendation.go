package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

// Presets de umbral (fracción del punto de reorden).
var (
	DefaultThreshold  = decimal.RequireFromString("0.20")
	CriticalThreshold = decimal.RequireFromString("0.10")
)

// ValidateThreshold exige un umbral en [0, 1].
func ValidateThreshold(threshold decimal.Decimal) error {
	if threshold.LessThan(decimal.Zero) || threshold.GreaterThan(decimal.NewFromInt(1)) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Cutoff = floor(ReorderLevel * umbral).
func Cutoff(reorderLevel int, threshold decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(reorderLevel)).Mul(threshold).Floor().IntPart())
}

// NeedsRestock indica si el registro entra en la consulta para el umbral dado (stock <= cutoff).
func NeedsRestock(record *entity.InventoryRecord, threshold decimal.Decimal) bool {
	return record.CurrentStock <= Cutoff(record.ReorderLevel, threshold)
}

// UrgencyLevel clasifica según ratio = stock / reorden:
// ratio < 0.10 → CRITICAL, ratio < 0.20 → HIGH, resto → MEDIUM.
// Se compara en enteros (stock*100 < reorden*10) para que el límite 0.10 exacto sea HIGH.
func UrgencyLevel(currentStock, reorderLevel int) string {
	switch {
	case currentStock*100 < reorderLevel*10:
		return entity.UrgencyCritical
	case currentStock*100 < reorderLevel*20:
		return entity.UrgencyHigh
	default:
		return entity.UrgencyMedium
	}
}

// RecommendedQuantity lleva el stock hasta la capacidad máxima.
func RecommendedQuantity(record *entity.InventoryRecord) int {
	return record.MaxCapacity - record.CurrentStock
}

// BuildRecommendation arma la recomendación base (sin proveedor ni proyección de consumo).
func BuildRecommendation(record *entity.InventoryRecord) entity.StockRecommendation {
	return entity.StockRecommendation{
		ProductID:           record.ProductID,
		ProductName:         record.ProductName,
		CurrentStock:        record.CurrentStock,
		ReorderLevel:        record.ReorderLevel,
		MaxCapacity:         record.MaxCapacity,
		RecommendedQuantity: RecommendedQuantity(record),
		UrgencyLevel:        UrgencyLevel(record.CurrentStock, record.ReorderLevel),
		DailySalesRate:      decimal.Zero,
	}
}
