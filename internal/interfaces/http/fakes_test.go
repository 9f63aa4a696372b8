package http_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

var errBoom = errors.New("conexión perdida con la base")

// fakeInventory implementa InventoryService con respuestas fijas.
type fakeInventory struct {
	records  map[string]*dto.InventoryResponse
	lastPage dto.PageRequest
	lastType string
	err      error
}

func (f *fakeInventory) Create(_ context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.InventoryResponse{ProductID: in.ProductID, ReorderLevel: in.ReorderLevel, MaxCapacity: in.MaxCapacity}, nil
}

func (f *fakeInventory) CreateFromProduct(_ context.Context, in dto.CreateFromProductRequest) (*dto.InventoryResponse, error) {
	return &dto.InventoryResponse{ProductID: in.ProductID, CurrentStock: in.InitialStock}, f.err
}

func (f *fakeInventory) Get(_ context.Context, id string) (*dto.InventoryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeInventory) List(_ context.Context, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	f.lastPage = page
	return &dto.InventoryListResponse{Page: dto.PageResponse{Page: page.Page, PageSize: page.PageSize}}, f.err
}

func (f *fakeInventory) ListLowStock(context.Context) ([]dto.InventoryResponse, error) {
	return []dto.InventoryResponse{{ProductID: "p-1", LowStock: true}}, f.err
}

func (f *fakeInventory) UpdateReorderLevel(_ context.Context, id string, in dto.UpdateReorderLevelRequest) (*dto.InventoryResponse, error) {
	return &dto.InventoryResponse{ProductID: id, ReorderLevel: in.ReorderLevel}, f.err
}

func (f *fakeInventory) UpdateConsumption(_ context.Context, id string, in dto.UpdateConsumptionRequest) (*dto.InventoryResponse, error) {
	if in.AverageDailyConsumption.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	v := in.AverageDailyConsumption
	return &dto.InventoryResponse{ProductID: id, AverageDailyConsumption: &v}, f.err
}

func (f *fakeInventory) History(_ context.Context, id, txType string, page dto.PageRequest) ([]dto.StockTransactionResponse, error) {
	f.lastType = txType
	f.lastPage = page
	return []dto.StockTransactionResponse{{ProductID: id, Type: "SALE", Quantity: -2}}, f.err
}

func (f *fakeInventory) HistoryBetween(_ context.Context, from, to time.Time) ([]dto.StockTransactionResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return []dto.StockTransactionResponse{}, f.err
}

// fakeLedger registra la última petición recibida.
type fakeLedger struct {
	lastQty   dto.StockQuantityRequest
	lastDelta dto.ApplyDeltaRequest
	err       error
}

func (f *fakeLedger) ApplyDelta(_ context.Context, id string, in dto.ApplyDeltaRequest) (*dto.StockUpdateResponse, error) {
	f.lastDelta = in
	if f.err != nil {
		return nil, f.err
	}
	return &dto.StockUpdateResponse{ProductID: id, PreviousStock: 10, NewStock: 10 + in.Quantity}, nil
}

func (f *fakeLedger) Restock(_ context.Context, id string, in dto.StockQuantityRequest) (*dto.StockUpdateResponse, error) {
	f.lastQty = in
	if f.err != nil {
		return nil, f.err
	}
	return &dto.StockUpdateResponse{ProductID: id, PreviousStock: 10, NewStock: 10 + in.Quantity}, nil
}

func (f *fakeLedger) Reduce(_ context.Context, id string, in dto.StockQuantityRequest) (*dto.StockUpdateResponse, error) {
	f.lastQty = in
	if f.err != nil {
		return nil, f.err
	}
	return &dto.StockUpdateResponse{ProductID: id, PreviousStock: 10, NewStock: 10 - in.Quantity}, nil
}

type fakeEstimator struct{}

func (fakeEstimator) DaysUntilStockout(_ context.Context, id string) (*dto.StockoutResponse, error) {
	return &dto.StockoutResponse{ProductID: id, CurrentStock: 10, DaysUntilStockout: 5, DailySalesRate: decimal.NewFromInt(2)}, nil
}

// fakeRecommendations devuelve las recomendaciones fijas y registra el último porcentaje.
type fakeRecommendations struct {
	recs          []entity.StockRecommendation
	byProduct     map[string]*entity.StockRecommendation
	lastPercent   decimal.Decimal
	lastThreshold decimal.Decimal
}

func (f *fakeRecommendations) Default(context.Context) ([]entity.StockRecommendation, error) {
	return f.recs, nil
}

func (f *fakeRecommendations) Critical(context.Context) ([]entity.StockRecommendation, error) {
	return f.recs[:1], nil
}

func (f *fakeRecommendations) ForPercent(_ context.Context, percent decimal.Decimal) ([]entity.StockRecommendation, error) {
	f.lastPercent = percent
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	return f.recs, nil
}

func (f *fakeRecommendations) RecommendationFor(_ context.Context, id string) (*entity.StockRecommendation, error) {
	r, ok := f.byProduct[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRecommendations) Report(_ context.Context, threshold decimal.Decimal) (*dto.RecommendationReport, error) {
	f.lastThreshold = threshold
	return &dto.RecommendationReport{
		Title:       "Sugerencias de compra",
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Threshold:   threshold,
	}, nil
}

type fakePopularity struct{ lastN int }

func (f *fakePopularity) Top(n int) []dto.PopularProductDTO {
	f.lastN = n
	return []dto.PopularProductDTO{{ProductID: "p-1", OrderedUnits: 9, OrderEvents: 3}}
}

type fakeRenderer struct{ contentType, ext string }

func (f fakeRenderer) Render(context.Context, *dto.RecommendationReport) ([]byte, error) {
	return []byte("contenido"), nil
}
func (f fakeRenderer) ContentType() string   { return f.contentType }
func (f fakeRenderer) FileExtension() string { return f.ext }
