package recommendation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

func newGenerator(inv *fakeInventory, sales *fakeSales, dir *fakeDirectory, batch int) *Generator {
	est := NewConsumptionEstimator(inv, sales)
	est.now = func() time.Time { return testNow }
	g := NewGenerator(inv, est, dir, logger.Nop(), batch)
	g.now = est.now
	return g
}

func ids(recs []entity.StockRecommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ProductID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_UmbralPorDefecto(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{
		rec("a", 5, 50, 100),
		rec("b", 11, 50, 100),
		rec("c", 2, 50, 100),
		rec("d", 0, 5, 20),
	}}
	g := newGenerator(inv, &fakeSales{}, &fakeDirectory{}, 0)

	recs, err := g.Default(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "d", "a"}, ids(recs), "CRITICAL primero, luego HIGH")
	a := recs[2]
	assert.Equal(t, entity.UrgencyHigh, a.UrgencyLevel, "5/50 = 0.10 exacto no es CRITICAL")
	assert.Equal(t, 95, a.RecommendedQuantity)
	assert.Equal(t, inventory.StockoutSentinel, a.DaysUntilStockout)
	assert.True(t, a.DailySalesRate.IsZero())
	assert.Equal(t, entity.UrgencyCritical, recs[0].UrgencyLevel)
}

func TestGenerate_PresetCritico(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{
		rec("a", 5, 50, 100),
		rec("b", 6, 50, 100),
		rec("d", 0, 5, 20),
	}}
	g := newGenerator(inv, &fakeSales{}, &fakeDirectory{}, 0)

	recs, err := g.Critical(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "d"}, ids(recs))
}

func TestGenerate_PorcentajeEquivaleAFraccion(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 5, 50, 100), rec("b", 15, 50, 100)}}
	g := newGenerator(inv, &fakeSales{}, &fakeDirectory{}, 0)

	byPercent, err := g.ForPercent(context.Background(), decimal.NewFromInt(30))
	require.NoError(t, err)
	byFraction, err := g.Generate(context.Background(), decimal.RequireFromString("0.3"))
	require.NoError(t, err)
	assert.Equal(t, ids(byFraction), ids(byPercent))
	assert.Equal(t, []string{"a", "b"}, ids(byPercent))
}

func TestGenerate_UmbralFueraDeRango(t *testing.T) {
	g := newGenerator(&fakeInventory{}, &fakeSales{}, &fakeDirectory{}, 0)

	_, err := g.Generate(context.Background(), decimal.RequireFromString("1.5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = g.ForPercent(context.Background(), decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerate_RecorreTodasLasPaginas(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{
		rec("a", 0, 10, 20), rec("b", 0, 10, 20), rec("c", 0, 10, 20), rec("d", 0, 10, 20), rec("e", 0, 10, 20),
	}}
	g := newGenerator(inv, &fakeSales{}, &fakeDirectory{}, 2)

	recs, err := g.Default(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 5)
	assert.Equal(t, 3, inv.listCalls)
}

func TestGenerate_ErrorDeRepositorio(t *testing.T) {
	g := newGenerator(&fakeInventory{err: errBoom}, &fakeSales{}, &fakeDirectory{}, 0)
	_, err := g.Default(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestGenerate_SinCoincidenciasDevuelveListaVacia(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 40, 50, 100)}}
	sales := &fakeSales{}
	g := newGenerator(inv, sales, &fakeDirectory{}, 0)

	recs, err := g.Default(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.Equal(t, 0, sales.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Enriquecimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_EnriqueceProveedorYConsumo(t *testing.T) {
	manual := rec("b", 4, 50, 100)
	manual.AverageDailyConsumption = ptrDec("2")
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 5, 50, 100), manual}}
	sales := &fakeSales{sold: map[string]int{"a": 30}}
	dir := &fakeDirectory{products: map[string]entity.ProductInfo{
		"a": {ID: "a", Name: "Producto a", SupplierID: "s-1", SupplierName: "Aceros del Sur"},
	}}
	g := newGenerator(inv, sales, dir, 0)

	recs, err := g.Default(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	byID := map[string]entity.StockRecommendation{}
	for _, r := range recs {
		byID[r.ProductID] = r
	}
	assert.Equal(t, "s-1", byID["a"].SupplierID)
	assert.Equal(t, "Aceros del Sur", byID["a"].SupplierName)
	assert.Equal(t, 5, byID["a"].DaysUntilStockout)
	assert.Equal(t, "1", byID["a"].DailySalesRate.String())

	assert.Empty(t, byID["b"].SupplierID, "producto fuera del catálogo queda sin proveedor")
	assert.Equal(t, 2, byID["b"].DaysUntilStockout)

	assert.Equal(t, 1, sales.calls, "una sola consulta agregada de ventas")
	assert.Equal(t, []string{"a"}, sales.lastIDs, "la tasa manual no consulta ventas")
	assert.True(t, sales.lastSince.Equal(testNow.AddDate(0, 0, -30)))
}

func TestGenerate_CatalogoCaidoNoFalla(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 1, 50, 100)}}
	g := newGenerator(inv, &fakeSales{}, &fakeDirectory{err: domain.ErrUpstreamUnavailable}, 0)

	recs, err := g.Default(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].SupplierName)
	assert.Equal(t, "Producto a", recs[0].ProductName)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecommendationFor / Report
// ──────────────────────────────────────────────────────────────────────────────

func TestRecommendationFor(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 8, 10, 40), rec("b", 10, 10, 40)}}
	g := newGenerator(inv, &fakeSales{}, &fakeDirectory{}, 0)
	ctx := context.Background()

	r, err := g.RecommendationFor(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 32, r.RecommendedQuantity)
	assert.Equal(t, entity.UrgencyMedium, r.UrgencyLevel)

	r, err = g.RecommendationFor(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, r, "stock igual al reorden no genera recomendación")

	_, err = g.RecommendationFor(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReport_ContieneRecomendaciones(t *testing.T) {
	inv := &fakeInventory{records: []*entity.InventoryRecord{rec("a", 1, 50, 100)}}
	g := newGenerator(inv, &fakeSales{}, &fakeDirectory{}, 0)

	rep, err := g.Report(context.Background(), inventory.DefaultThreshold)
	require.NoError(t, err)
	assert.True(t, rep.GeneratedAt.Equal(testNow))
	assert.True(t, rep.Threshold.Equal(decimal.RequireFromString("0.2")))
	require.Len(t, rep.Recommendations, 1)
	assert.Equal(t, 99, rep.Recommendations[0].RecommendedQuantity)
}
