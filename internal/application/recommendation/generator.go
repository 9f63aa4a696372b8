package recommendation

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

var tracer = otel.Tracer("supplychain-inventory/recommendation")

// DefaultBatchSize registros leídos por página al recorrer el inventario.
const DefaultBatchSize = 500

var hundred = decimal.NewFromInt(100)

// Generator selecciona los productos que requieren reposición, calcula urgencia y cantidad sugerida
// y los enriquece con proyección de consumo y proveedor.
type Generator struct {
	inventory repository.InventoryRepository
	estimator *ConsumptionEstimator
	products  ports.ProductDirectory
	log       *logger.Logger
	batchSize int
	now       func() time.Time
}

// NewGenerator construye el generador. batchSize <= 0 usa DefaultBatchSize.
func NewGenerator(
	inv repository.InventoryRepository,
	estimator *ConsumptionEstimator,
	products ports.ProductDirectory,
	log *logger.Logger,
	batchSize int,
) *Generator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Generator{
		inventory: inv,
		estimator: estimator,
		products:  products,
		log:       log,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// Generate devuelve las recomendaciones para el umbral dado (fracción en [0,1]).
// Incluye los registros con stock <= floor(reorden * umbral), ordenados por urgencia,
// luego por días hasta agotar y por producto.
func (g *Generator) Generate(ctx context.Context, threshold decimal.Decimal) ([]entity.StockRecommendation, error) {
	ctx, span := tracer.Start(ctx, "recommendation.generate")
	defer span.End()
	span.SetAttributes(attribute.String("recommendation.threshold", threshold.String()))

	if err := inventory.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	var selected []*entity.InventoryRecord
	for page := 0; ; page++ {
		batch, err := g.inventory.List(ctx, page, g.batchSize)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		for _, r := range batch {
			if inventory.NeedsRestock(r, threshold) {
				selected = append(selected, r)
			}
		}
		if len(batch) < g.batchSize {
			break
		}
	}

	recs, err := g.build(ctx, selected)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	sortRecommendations(recs)

	span.SetAttributes(attribute.Int("recommendation.count", len(recs)))
	span.SetStatus(codes.Ok, "recommendations generated")
	return recs, nil
}

// Default umbral 0.20.
func (g *Generator) Default(ctx context.Context) ([]entity.StockRecommendation, error) {
	return g.Generate(ctx, inventory.DefaultThreshold)
}

// Critical umbral 0.10.
func (g *Generator) Critical(ctx context.Context) ([]entity.StockRecommendation, error) {
	return g.Generate(ctx, inventory.CriticalThreshold)
}

// ForPercent umbral expresado en porcentaje (0..100).
func (g *Generator) ForPercent(ctx context.Context, percent decimal.Decimal) ([]entity.StockRecommendation, error) {
	return g.Generate(ctx, PercentToThreshold(percent))
}

// PercentToThreshold convierte 0..100 a la fracción 0..1.
func PercentToThreshold(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// RecommendationFor recomendación de un producto. ErrNotFound si no tiene inventario;
// (nil, nil) si el stock no está por debajo del punto de reorden.
func (g *Generator) RecommendationFor(ctx context.Context, productID string) (*entity.StockRecommendation, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := g.inventory.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if record.CurrentStock >= record.ReorderLevel {
		return nil, nil
	}
	recs, err := g.build(ctx, []*entity.InventoryRecord{record})
	if err != nil {
		return nil, err
	}
	return &recs[0], nil
}

// Report arma los datos del reporte de sugerencias de compra para el umbral dado.
func (g *Generator) Report(ctx context.Context, threshold decimal.Decimal) (*dto.RecommendationReport, error) {
	recs, err := g.Generate(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return &dto.RecommendationReport{
		Title:           "Sugerencias de compra",
		GeneratedAt:     g.now(),
		Threshold:       threshold,
		Recommendations: ToDTOs(recs),
	}, nil
}

// build arma las recomendaciones: proyección de consumo en lote y proveedor (best effort).
func (g *Generator) build(ctx context.Context, records []*entity.InventoryRecord) ([]entity.StockRecommendation, error) {
	out := make([]entity.StockRecommendation, 0, len(records))
	if len(records) == 0 {
		return out, nil
	}
	estimates, err := g.estimator.EstimateBatch(ctx, records)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		rec := inventory.BuildRecommendation(r)
		if est, ok := estimates[r.ProductID]; ok {
			rec.DaysUntilStockout = est.DaysUntilStockout
			rec.DailySalesRate = est.DailySalesRate
		}
		g.enrichSupplier(ctx, &rec)
		out = append(out, rec)
	}
	return out, nil
}

// enrichSupplier completa proveedor y nombre desde el catálogo. Un fallo deja los campos vacíos.
func (g *Generator) enrichSupplier(ctx context.Context, rec *entity.StockRecommendation) {
	if g.products == nil {
		return
	}
	p, err := g.products.GetProduct(ctx, rec.ProductID)
	if err != nil {
		ev := g.log.Warn()
		if errors.Is(err, domain.ErrNotFound) {
			ev = g.log.Debug()
		}
		ev.Err(err).Str("product_id", rec.ProductID).Msg("recomendación sin datos de proveedor")
		return
	}
	rec.SupplierID = p.SupplierID
	rec.SupplierName = p.SupplierName
	if rec.ProductName == "" {
		rec.ProductName = p.Name
	}
}

var urgencyRank = map[string]int{
	entity.UrgencyCritical: 0,
	entity.UrgencyHigh:     1,
	entity.UrgencyMedium:   2,
}

func sortRecommendations(recs []entity.StockRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if urgencyRank[a.UrgencyLevel] != urgencyRank[b.UrgencyLevel] {
			return urgencyRank[a.UrgencyLevel] < urgencyRank[b.UrgencyLevel]
		}
		if a.DaysUntilStockout != b.DaysUntilStockout {
			return a.DaysUntilStockout < b.DaysUntilStockout
		}
		return a.ProductID < b.ProductID
	})
}

// ToDTO convierte una recomendación al DTO de salida.
func ToDTO(r entity.StockRecommendation) dto.StockRecommendationDTO {
	return dto.StockRecommendationDTO{
		ProductID:           r.ProductID,
		ProductName:         r.ProductName,
		CurrentStock:        r.CurrentStock,
		ReorderLevel:        r.ReorderLevel,
		MaxCapacity:         r.MaxCapacity,
		RecommendedQuantity: r.RecommendedQuantity,
		UrgencyLevel:        r.UrgencyLevel,
		SupplierID:          r.SupplierID,
		SupplierName:        r.SupplierName,
		DaysUntilStockout:   r.DaysUntilStockout,
		DailySalesRate:      r.DailySalesRate,
	}
}

// ToDTOs convierte una lista de recomendaciones.
func ToDTOs(recs []entity.StockRecommendation) []dto.StockRecommendationDTO {
	out := make([]dto.StockRecommendationDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, ToDTO(r))
	}
	return out
}

// ToListResponse respuesta HTTP de una consulta por umbral.
func ToListResponse(threshold decimal.Decimal, recs []entity.StockRecommendation) *dto.RecommendationListResponse {
	return &dto.RecommendationListResponse{
		Threshold:       threshold,
		Total:           len(recs),
		Recommendations: ToDTOs(recs),
	}
}
