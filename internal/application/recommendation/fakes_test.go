package recommendation

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
)

type fakeInventory struct {
	records   []*entity.InventoryRecord
	listCalls int
	err       error
}

var _ repository.InventoryRepository = (*fakeInventory)(nil)

func (f *fakeInventory) Create(context.Context, *entity.InventoryRecord) error { return nil }
func (f *fakeInventory) Update(context.Context, *entity.InventoryRecord) error { return nil }

func (f *fakeInventory) GetByProductID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	for _, r := range f.records {
		if r.ProductID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeInventory) GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return f.GetByProductID(ctx, id)
}

func (f *fakeInventory) List(_ context.Context, page, pageSize int) ([]*entity.InventoryRecord, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	sorted := append([]*entity.InventoryRecord(nil), f.records...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })
	start := page * pageSize
	if start >= len(sorted) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], nil
}

func (f *fakeInventory) ListLowStock(context.Context) ([]*entity.InventoryRecord, error) {
	return nil, nil
}

// fakeSales devuelve ventas fijas por producto y registra la ventana consultada.
type fakeSales struct {
	sold      map[string]int
	calls     int
	lastSince time.Time
	lastIDs   []string
}

var _ repository.StockTransactionRepository = (*fakeSales)(nil)

func (f *fakeSales) Create(context.Context, *entity.StockTransaction) error { return nil }

func (f *fakeSales) ListByProduct(context.Context, string, string, int, int) ([]*entity.StockTransaction, error) {
	return nil, nil
}

func (f *fakeSales) ListByDateRange(context.Context, time.Time, time.Time) ([]*entity.StockTransaction, error) {
	return nil, nil
}

func (f *fakeSales) SalesSince(_ context.Context, since time.Time, ids ...string) (map[string]int, error) {
	f.calls++
	f.lastSince = since
	f.lastIDs = ids
	out := map[string]int{}
	for _, id := range ids {
		if n, ok := f.sold[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

type fakeDirectory struct {
	products map[string]entity.ProductInfo
	err      error
}

func (d *fakeDirectory) GetProduct(_ context.Context, id string) (*entity.ProductInfo, error) {
	if d.err != nil {
		return nil, d.err
	}
	p, ok := d.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func rec(id string, current, reorder, capacity int) *entity.InventoryRecord {
	return &entity.InventoryRecord{
		ProductID:    id,
		ProductName:  "Producto " + id,
		CurrentStock: current,
		ReorderLevel: reorder,
		MaxCapacity:  capacity,
	}
}

func ptrDec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var errBoom = errors.New("boom")

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
