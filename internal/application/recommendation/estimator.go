// Package recommendation orquesta el estimador de consumo y el generador de recomendaciones
// de reposición sobre los repositorios de inventario y el catálogo de productos.
package recommendation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
)

// Estimate proyección de consumo de un producto.
type Estimate struct {
	DaysUntilStockout int
	DailySalesRate    decimal.Decimal
}

// ConsumptionEstimator calcula días hasta agotar stock con la tasa manual del registro
// o, si no hay, con las ventas (SALE) de los últimos 30 días.
type ConsumptionEstimator struct {
	inventory repository.InventoryRepository
	txRepo    repository.StockTransactionRepository
	now       func() time.Time
}

// NewConsumptionEstimator construye el estimador.
func NewConsumptionEstimator(inv repository.InventoryRepository, txRepo repository.StockTransactionRepository) *ConsumptionEstimator {
	return &ConsumptionEstimator{inventory: inv, txRepo: txRepo, now: time.Now}
}

// DaysUntilStockout proyección para un producto por ID.
func (e *ConsumptionEstimator) DaysUntilStockout(ctx context.Context, productID string) (*dto.StockoutResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := e.inventory.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	est, err := e.Estimate(ctx, record)
	if err != nil {
		return nil, err
	}
	return &dto.StockoutResponse{
		ProductID:         record.ProductID,
		CurrentStock:      record.CurrentStock,
		DaysUntilStockout: est.DaysUntilStockout,
		DailySalesRate:    est.DailySalesRate,
	}, nil
}

// Estimate proyección para un registro ya cargado. Solo consulta ventas si no hay tasa manual.
func (e *ConsumptionEstimator) Estimate(ctx context.Context, record *entity.InventoryRecord) (Estimate, error) {
	if hasManualRate(record) {
		days, rate := inventory.DaysUntilStockout(record.CurrentStock, record.AverageDailyConsumption, 0)
		return Estimate{DaysUntilStockout: days, DailySalesRate: rate}, nil
	}
	sold, err := e.txRepo.SalesSince(ctx, e.windowStart(), record.ProductID)
	if err != nil {
		return Estimate{}, err
	}
	days, rate := inventory.DaysUntilStockout(record.CurrentStock, nil, sold[record.ProductID])
	return Estimate{DaysUntilStockout: days, DailySalesRate: rate}, nil
}

// EstimateBatch proyección para varios registros con una sola consulta agregada de ventas.
func (e *ConsumptionEstimator) EstimateBatch(ctx context.Context, records []*entity.InventoryRecord) (map[string]Estimate, error) {
	out := make(map[string]Estimate, len(records))
	var pending []string
	for _, r := range records {
		if !hasManualRate(r) {
			pending = append(pending, r.ProductID)
		}
	}
	sold := map[string]int{}
	if len(pending) > 0 {
		var err error
		sold, err = e.txRepo.SalesSince(ctx, e.windowStart(), pending...)
		if err != nil {
			return nil, err
		}
	}
	for _, r := range records {
		var days int
		var rate decimal.Decimal
		if hasManualRate(r) {
			days, rate = inventory.DaysUntilStockout(r.CurrentStock, r.AverageDailyConsumption, 0)
		} else {
			days, rate = inventory.DaysUntilStockout(r.CurrentStock, nil, sold[r.ProductID])
		}
		out[r.ProductID] = Estimate{DaysUntilStockout: days, DailySalesRate: rate}
	}
	return out, nil
}

func (e *ConsumptionEstimator) windowStart() time.Time {
	return e.now().AddDate(0, 0, -inventory.SalesWindowDays)
}

func hasManualRate(r *entity.InventoryRecord) bool {
	return r.AverageDailyConsumption != nil && r.AverageDailyConsumption.GreaterThan(decimal.Zero)
}
