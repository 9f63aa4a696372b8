package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
)

// memStore estado en memoria compartido por los repos fake.
type memStore struct {
	mu        sync.Mutex
	records   map[string]entity.InventoryRecord
	txs       []entity.StockTransaction
	products  map[string]entity.ProductInfo
	failTxErr error // si != nil, StockTransactionRepository.Create falla
}

func newMemStore() *memStore {
	return &memStore{
		records:  map[string]entity.InventoryRecord{},
		products: map[string]entity.ProductInfo{},
	}
}

func (s *memStore) put(r entity.InventoryRecord) { s.records[r.ProductID] = r }

type memInventoryRepo struct{ s *memStore }

var _ repository.InventoryRepository = (*memInventoryRepo)(nil)

func (r *memInventoryRepo) Create(_ context.Context, rec *entity.InventoryRecord) error {
	if _, ok := r.s.records[rec.ProductID]; ok {
		return domain.ErrDuplicate
	}
	r.s.records[rec.ProductID] = *rec
	return nil
}

func (r *memInventoryRepo) GetByProductID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	rec, ok := r.s.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *memInventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.GetByProductID(ctx, id)
}

func (r *memInventoryRepo) Update(_ context.Context, rec *entity.InventoryRecord) error {
	if _, ok := r.s.records[rec.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.s.records[rec.ProductID] = *rec
	return nil
}

func (r *memInventoryRepo) List(_ context.Context, page, pageSize int) ([]*entity.InventoryRecord, error) {
	all := r.sorted()
	start := page * pageSize
	if start >= len(all) {
		return []*entity.InventoryRecord{}, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *memInventoryRepo) ListLowStock(_ context.Context) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range r.sorted() {
		if rec.IsLowStock() {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) sorted() []*entity.InventoryRecord {
	out := make([]*entity.InventoryRecord, 0, len(r.s.records))
	for _, rec := range r.s.records {
		rec := rec
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

type memTxRepo struct{ s *memStore }

var _ repository.StockTransactionRepository = (*memTxRepo)(nil)

func (r *memTxRepo) Create(_ context.Context, tx *entity.StockTransaction) error {
	if r.s.failTxErr != nil {
		return r.s.failTxErr
	}
	r.s.txs = append(r.s.txs, *tx)
	return nil
}

func (r *memTxRepo) ListByProduct(_ context.Context, productID, txType string, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for i := len(r.s.txs) - 1; i >= 0; i-- {
		t := r.s.txs[i]
		if t.ProductID != productID || (txType != "" && t.Type != txType) {
			continue
		}
		out = append(out, &t)
	}
	if offset >= len(out) {
		return []*entity.StockTransaction{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memTxRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, t := range r.s.txs {
		t := t
		if !t.Timestamp.Before(from) && !t.Timestamp.After(to) {
			out = append(out, &t)
		}
	}
	return out, nil
}

func (r *memTxRepo) SalesSince(_ context.Context, since time.Time, productIDs ...string) (map[string]int, error) {
	out := map[string]int{}
	for _, t := range r.s.txs {
		if t.Type == entity.TransactionTypeSALE && !t.Timestamp.Before(since) {
			out[t.ProductID] += -t.Quantity
		}
	}
	return out, nil
}

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Upsert(_ context.Context, p *entity.ProductInfo) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.ProductInfo, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.s.products, id)
	return nil
}

// memTxRunner serializa las transacciones y restaura el estado si fn falla (rollback).
type memTxRunner struct{ s *memStore }

func (m *memTxRunner) Run(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	txRepo repository.StockTransactionRepository,
) error) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	records := make(map[string]entity.InventoryRecord, len(m.s.records))
	for k, v := range m.s.records {
		records[k] = v
	}
	txs := append([]entity.StockTransaction(nil), m.s.txs...)

	if err := fn(&memInventoryRepo{s: m.s}, &memTxRepo{s: m.s}); err != nil {
		m.s.records = records
		m.s.txs = txs
		return err
	}
	return nil
}

// fakePublisher registra los eventos publicados.
type fakePublisher struct {
	mu     sync.Mutex
	events []entity.InventoryEvent
}

func (p *fakePublisher) PublishInventoryEvent(_ context.Context, ev entity.InventoryEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

// fakeDirectory catálogo en memoria; err fuerza un fallo del servicio.
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

var errBoom = errors.New("boom")

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }
