package inventory

import (
	"context"

	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el cambio de stock y el registro en el ledger se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
	) error) error
}
