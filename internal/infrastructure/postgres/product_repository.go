package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ ports.ProductDirectory       = (*ProductRepo)(nil)
)

// ProductRepo réplica local del catálogo (tabla products), alimentada por los eventos de producto.
// También sirve de ProductDirectory cuando no hay servicio de productos configurado.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Upsert inserta o actualiza el producto replicado.
func (r *ProductRepo) Upsert(ctx context.Context, p *entity.ProductInfo) error {
	query := `
		INSERT INTO products (id, name, price, category, supplier_id, supplier_name, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, price = EXCLUDED.price, category = EXCLUDED.category,
			supplier_id = EXCLUDED.supplier_id, supplier_name = EXCLUDED.supplier_name,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Price, p.Category, p.SupplierID, p.SupplierName, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto replicado; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.ProductInfo, error) {
	query := `
		SELECT id, name, price, category, supplier_id, supplier_name, updated_at
		FROM products WHERE id = $1`
	var p entity.ProductInfo
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Category, &p.SupplierID, &p.SupplierName, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetProduct implementa ports.ProductDirectory sobre la réplica.
func (r *ProductRepo) GetProduct(ctx context.Context, productID string) (*entity.ProductInfo, error) {
	p, err := r.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Delete elimina el producto de la réplica. No toca el inventario.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
