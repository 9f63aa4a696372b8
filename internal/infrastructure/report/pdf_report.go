// Package report genera el reporte de sugerencias de compra en PDF (Maroto) y XLSX (excelize).
//
// Layout de la página A4 del PDF:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título              │  Fecha + Umbral              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos por urgencia                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Stock | Reorden | Pedir | Días | Urgencia │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
)

var _ ports.ReportRenderer = (*PDFRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 20, Blue: 20}
	colorHigh     = &props.Color{Red: 200, Green: 110, Blue: 0}
)

// PDFRenderer implementa ports.ReportRenderer usando Maroto v2.
type PDFRenderer struct{}

// NewPDFRenderer construye el renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) ContentType() string   { return "application/pdf" }
func (r *PDFRenderer) FileExtension() string { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (r *PDFRenderer) Render(_ context.Context, rep *dto.RecommendationReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(rep.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep.Recommendations))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(rep.Recommendations) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay productos por debajo del umbral.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(rep.Recommendations)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rep *dto.RecommendationReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(rep.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Umbral: "+thresholdPercent(rep), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// summaryRow: cantidad de productos por nivel de urgencia.
func summaryRow(recs []dto.StockRecommendationDTO) core.Row {
	counts := countByUrgency(recs)
	cell := func(label string, n int, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: c, Top: 1, Align: align.Center}),
			text.New(strconv.Itoa(n), props.Text{Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("CRÍTICO", counts[entity.UrgencyCritical], colorCritical),
		cell("ALTO", counts[entity.UrgencyHigh], colorHigh),
		cell("MEDIO", counts[entity.UrgencyMedium], colorPrimary),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Stock", 1, align.Right),
		h("Reorden", 1, align.Right),
		h("Pedir", 1, align.Right),
		h("Días", 1, align.Right),
		h("Proveedor", 2, align.Left),
		h("Urgencia", 2, align.Center),
	)
}

// tableDetailRows: una fila por producto.
func tableDetailRows(recs []dto.StockRecommendationDTO) []core.Row {
	result := make([]core.Row, 0, len(recs))
	for _, r := range recs {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				nonEmpty(r.ProductName, r.ProductID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(strconv.Itoa(r.CurrentStock), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(r.ReorderLevel), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(r.RecommendedQuantity), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			})),
			col.New(1).Add(text.New(daysLabel(r.DaysUntilStockout), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(r.SupplierName, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.UrgencyLevel, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: urgencyColor(r.UrgencyLevel),
			})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func countByUrgency(recs []dto.StockRecommendationDTO) map[string]int {
	out := make(map[string]int, 3)
	for _, r := range recs {
		out[r.UrgencyLevel]++
	}
	return out
}

func urgencyColor(level string) *props.Color {
	switch level {
	case entity.UrgencyCritical:
		return colorCritical
	case entity.UrgencyHigh:
		return colorHigh
	default:
		return colorPrimary
	}
}

func thresholdPercent(rep *dto.RecommendationReport) string {
	return rep.Threshold.Shift(2).StringFixed(0) + "%"
}

// daysLabel oculta el centinela de "sin consumo registrado".
func daysLabel(days int) string {
	if days >= inventory.StockoutSentinel {
		return "—"
	}
	return strconv.Itoa(days)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
