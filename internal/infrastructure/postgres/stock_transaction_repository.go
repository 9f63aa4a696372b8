package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo ledger de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const transactionColumns = `id, product_id, type, quantity, previous_stock, new_stock, timestamp, performed_by, notes`

// id es UUID en la tabla; se lee como texto.
const transactionSelect = `id::text, product_id, type, quantity, previous_stock, new_stock, timestamp, performed_by, notes`

func (r *StockTransactionRepo) Create(ctx context.Context, tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.ProductID, tx.Type, tx.Quantity, tx.PreviousStock, tx.NewStock,
		tx.Timestamp, tx.PerformedBy, tx.Notes,
	)
	if err != nil {
		return wrapErr("create stock transaction", err)
	}
	return nil
}

func (r *StockTransactionRepo) ListByProduct(ctx context.Context, productID, txType string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + transactionSelect + `
		FROM stock_transactions
		WHERE product_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY timestamp DESC, id
		LIMIT $3 OFFSET $4`
	return r.list(ctx, "list transactions by product", query, productID, txType, limit, offset)
}

func (r *StockTransactionRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + transactionSelect + `
		FROM stock_transactions
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp DESC, id`
	return r.list(ctx, "list transactions by date", query, from, to)
}

// SalesSince agrega las ventas (SALE) por producto desde since. Sin productIDs agrega todos.
func (r *StockTransactionRepo) SalesSince(ctx context.Context, since time.Time, productIDs ...string) (map[string]int, error) {
	query := `
		SELECT product_id, COALESCE(SUM(ABS(quantity)), 0)
		FROM stock_transactions
		WHERE type = 'SALE' AND timestamp >= $1
		  AND (cardinality($2::text[]) = 0 OR product_id = ANY($2::text[]))
		GROUP BY product_id`
	if productIDs == nil {
		productIDs = []string{}
	}
	rows, err := r.q.Query(ctx, query, since, productIDs)
	if err != nil {
		return nil, wrapErr("sales since", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var id string
		var sold int
		if err := rows.Scan(&id, &sold); err != nil {
			return nil, wrapErr("scan sales", err)
		}
		out[id] = sold
	}
	return out, rows.Err()
}

func (r *StockTransactionRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.StockTransaction, 0)
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.Type, &t.Quantity, &t.PreviousStock, &t.NewStock,
			&t.Timestamp, &t.PerformedBy, &t.Notes,
		); err != nil {
			return nil, wrapErr("scan stock transaction", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
