package ports

import (
	"context"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

// ProductDirectory define el puerto de salida hacia el catálogo de productos.
// Cualquier adaptador (réplica PostgreSQL, cliente HTTP, caché Redis, mock) debe implementarlo.
//
// Errores esperados: domain.ErrNotFound si el producto no existe,
// domain.ErrUpstreamUnavailable si el catálogo no respondió.
type ProductDirectory interface {
	GetProduct(ctx context.Context, productID string) (*entity.ProductInfo, error)
}
