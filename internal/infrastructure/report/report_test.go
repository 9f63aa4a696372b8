package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
)

func sampleReport() *dto.RecommendationReport {
	return &dto.RecommendationReport{
		Title:       "Sugerencias de compra",
		GeneratedAt: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		Threshold:   decimal.RequireFromString("0.2"),
		Recommendations: []dto.StockRecommendationDTO{
			{ProductID: "p-1", ProductName: "Sierra", CurrentStock: 2, ReorderLevel: 50, MaxCapacity: 100, RecommendedQuantity: 98, UrgencyLevel: "CRITICAL", SupplierName: "Ferretería Norte", DaysUntilStockout: 1, DailySalesRate: decimal.RequireFromString("1.5")},
			{ProductID: "p-2", CurrentStock: 9, ReorderLevel: 50, MaxCapacity: 60, RecommendedQuantity: 51, UrgencyLevel: "HIGH", DaysUntilStockout: 999},
		},
	}
}

func TestPDFRenderer_GeneraDocumento(t *testing.T) {
	r := NewPDFRenderer()
	out, err := r.Render(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", r.ContentType())
	assert.Equal(t, "pdf", r.FileExtension())
}

func TestPDFRenderer_ReporteVacio(t *testing.T) {
	rep := sampleReport()
	rep.Recommendations = nil
	out, err := NewPDFRenderer().Render(context.Background(), rep)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestXLSXRenderer_UnaFilaPorSugerencia(t *testing.T) {
	out, err := NewXLSXRenderer().Render(context.Background(), sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Producto", rows[0][0])
	assert.Equal(t, "p-1", rows[1][0])
	assert.Equal(t, "98", rows[1][5])
	assert.Equal(t, "HIGH", rows[2][6])
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "20%", thresholdPercent(sampleReport()))
	assert.Equal(t, "—", daysLabel(999))
	assert.Equal(t, "7", daysLabel(7))
}
