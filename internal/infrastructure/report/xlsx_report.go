package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
)

var _ ports.ReportRenderer = (*XLSXRenderer)(nil)

const sheetName = "Sugerencias"

var xlsxHeadings = []string{
	"Producto", "Nombre", "Stock actual", "Punto de reorden", "Capacidad máxima",
	"Cantidad a pedir", "Urgencia", "Proveedor", "Días hasta agotarse", "Venta diaria",
}

// XLSXRenderer implementa ports.ReportRenderer con excelize.
type XLSXRenderer struct{}

// NewXLSXRenderer construye el renderer.
func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (r *XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XLSXRenderer) FileExtension() string { return "xlsx" }

// Render arma una hoja con una fila por sugerencia.
func (r *XLSXRenderer) Render(_ context.Context, rep *dto.RecommendationReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, h := range xlsxHeadings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(xlsxHeadings), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, rec := range rep.Recommendations {
		values := []interface{}{
			rec.ProductID,
			rec.ProductName,
			rec.CurrentStock,
			rec.ReorderLevel,
			rec.MaxCapacity,
			rec.RecommendedQuantity,
			rec.UrgencyLevel,
			rec.SupplierName,
			rec.DaysUntilStockout,
			rec.DailySalesRate.InexactFloat64(),
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "B", 24)
	_ = f.SetColWidth(sheetName, "H", "H", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
