package repository

import (
	"context"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

// ProductRepository réplica local del catálogo del servicio de productos, alimentada por eventos.
type ProductRepository interface {
	Upsert(ctx context.Context, product *entity.ProductInfo) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.ProductInfo, error)
	Delete(ctx context.Context, id string) error
}
