package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `product_id, product_name, current_stock, reorder_level, max_capacity,
	location, average_daily_consumption, last_restocked, created_at, updated_at`

func (r *InventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		rec.ProductID, rec.ProductName, rec.CurrentStock, rec.ReorderLevel, rec.MaxCapacity,
		rec.Location, rec.AverageDailyConsumption, rec.LastRestocked, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return wrapErr("create inventory", err)
	}
	return nil
}

func (r *InventoryRepo) GetByProductID(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1`
	return r.getOne(ctx, "get inventory", query, productID)
}

// GetForUpdate obtiene el registro y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 FOR UPDATE`
	return r.getOne(ctx, "get inventory for update", query, productID)
}

func (r *InventoryRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.InventoryRecord, error) {
	rec, err := scanInventory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return rec, nil
}

func (r *InventoryRepo) Update(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		UPDATE inventory SET
			product_name = $2, current_stock = $3, reorder_level = $4, max_capacity = $5,
			location = $6, average_daily_consumption = $7, last_restocked = $8, updated_at = $9
		WHERE product_id = $1`
	_, err := r.q.Exec(ctx, query,
		rec.ProductID, rec.ProductName, rec.CurrentStock, rec.ReorderLevel, rec.MaxCapacity,
		rec.Location, rec.AverageDailyConsumption, rec.LastRestocked, rec.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update inventory", err)
	}
	return nil
}

func (r *InventoryRepo) List(ctx context.Context, page, pageSize int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory ORDER BY product_id LIMIT $1 OFFSET $2`
	return r.list(ctx, "list inventory", query, pageSize, page*pageSize)
}

func (r *InventoryRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE current_stock <= reorder_level ORDER BY product_id`
	return r.list(ctx, "list low stock", query)
}

func (r *InventoryRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryRecord, 0)
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, wrapErr("scan inventory", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanInventory(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ProductID, &rec.ProductName, &rec.CurrentStock, &rec.ReorderLevel, &rec.MaxCapacity,
		&rec.Location, &rec.AverageDailyConsumption, &rec.LastRestocked, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
