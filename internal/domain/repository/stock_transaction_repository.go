package repository

import (
	"context"
	"time"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

// StockTransactionRepository define el puerto del ledger (solo inserción y lectura).
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	// ListByProduct ordena por fecha descendente; txType vacío = todos los tipos.
	ListByProduct(ctx context.Context, productID, txType string, limit, offset int) ([]*entity.StockTransaction, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.StockTransaction, error)
	// SalesSince suma |quantity| de las transacciones SALE desde since, por producto.
	// Los productos sin ventas no aparecen en el mapa.
	SalesSince(ctx context.Context, since time.Time, productIDs ...string) (map[string]int, error)
}
