package recommendation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
)

func newEstimator(inv *fakeInventory, sales *fakeSales) *ConsumptionEstimator {
	e := NewConsumptionEstimator(inv, sales)
	e.now = func() time.Time { return testNow }
	return e
}

func TestDaysUntilStockout_SinVentasDevuelveCentinela(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 40, 10, 100)}}
	e := newEstimator(inv, &fakeSales{})

	res, err := e.DaysUntilStockout(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, inventory.StockoutSentinel, res.DaysUntilStockout)
	assert.True(t, res.DailySalesRate.IsZero())
	assert.Equal(t, 40, res.CurrentStock)
}

func TestDaysUntilStockout_VentasDelPeriodo(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 10, 10, 100)}}
	sales := &fakeSales{sold: map[string]int{"a": 10}}
	e := newEstimator(inv, sales)

	res, err := e.DaysUntilStockout(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 30, res.DaysUntilStockout)
	assert.Equal(t, "0.3333", res.DailySalesRate.String())
	assert.True(t, sales.lastSince.Equal(testNow.AddDate(0, 0, -30)))
}

func TestDaysUntilStockout_TasaManualTienePrioridad(t *testing.T) {
	r := rec("a", 10, 10, 100)
	r.AverageDailyConsumption = ptrDec("3")
	sales := &fakeSales{sold: map[string]int{"a": 300}}
	e := newEstimator(&fakeInventory{records: []*entity.InventoryRecord{r}}, sales)

	res, err := e.DaysUntilStockout(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 4, res.DaysUntilStockout)
	assert.Equal(t, 0, sales.calls)
}

func TestDaysUntilStockout_TasaManualCeroUsaVentas(t *testing.T) {
	r := rec("a", 6, 10, 100)
	r.AverageDailyConsumption = ptrDec("0")
	sales := &fakeSales{sold: map[string]int{"a": 60}}
	e := newEstimator(&fakeInventory{records: []*entity.InventoryRecord{r}}, sales)

	res, err := e.DaysUntilStockout(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 3, res.DaysUntilStockout)
	assert.Equal(t, 1, sales.calls)
}

func TestDaysUntilStockout_Idempotente(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 7, 10, 100)}}
	e := newEstimator(inv, &fakeSales{sold: map[string]int{"a": 60}})

	first, err := e.DaysUntilStockout(context.Background(), "a")
	require.NoError(t, err)
	second, err := e.DaysUntilStockout(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, first.DaysUntilStockout)
}

func TestDaysUntilStockout_ProductoInexistente(t *testing.T) {
	e := newEstimator(&fakeInventory{}, &fakeSales{})
	_, err := e.DaysUntilStockout(context.Background(), "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.DaysUntilStockout(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEstimateBatch_CoincideConEstimateIndividual(t *testing.T) {
	manual := rec("m", 9, 10, 100)
	manual.AverageDailyConsumption = ptrDec("2")
	records := []*entity.InventoryRecord{rec("a", 10, 10, 100), rec("b", 0, 10, 100), manual, rec("z", 50, 10, 100)}
	sales := &fakeSales{sold: map[string]int{"a": 15, "b": 4}}
	e := newEstimator(&fakeInventory{records: records}, sales)

	batch, err := e.EstimateBatch(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, batch, 4)

	for _, r := range records {
		single, err := e.Estimate(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, single.DaysUntilStockout, batch[r.ProductID].DaysUntilStockout, r.ProductID)
		assert.True(t, single.DailySalesRate.Equal(batch[r.ProductID].DailySalesRate), r.ProductID)
	}
	assert.Equal(t, 20, batch["a"].DaysUntilStockout)
	assert.Equal(t, 0, batch["b"].DaysUntilStockout)
	assert.Equal(t, 5, batch["m"].DaysUntilStockout)
	assert.Equal(t, inventory.StockoutSentinel, batch["z"].DaysUntilStockout)
}
