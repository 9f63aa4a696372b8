package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

var tracer = otel.Tracer("supplychain-inventory/inventory")

// Notas fijas de los atajos de restock / venta.
const (
	NoteRestock = "Product restocked"
	NoteReduce  = "Stock reduced for sale"
)

// StockLedgerUseCase aplica deltas de stock de forma transaccional (SELECT FOR UPDATE + Commit/Rollback)
// y publica los eventos de inventario después del commit.
type StockLedgerUseCase struct {
	txRunner  TxRunner
	publisher ports.EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner, publisher ports.EventPublisher, log *logger.Logger) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// ApplyDelta registra un movimiento de cualquier tipo. Quantity es el delta con signo.
func (uc *StockLedgerUseCase) ApplyDelta(ctx context.Context, productID string, in dto.ApplyDeltaRequest) (*dto.StockUpdateResponse, error) {
	tx, err := uc.apply(ctx, productID, in.Quantity, in.Type, in.PerformedBy, in.Notes)
	if err != nil {
		return nil, err
	}
	return toStockUpdateResponse(tx, "Stock updated"), nil
}

// Restock suma quantity unidades (RESTOCK).
func (uc *StockLedgerUseCase) Restock(ctx context.Context, productID string, in dto.StockQuantityRequest) (*dto.StockUpdateResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	tx, err := uc.apply(ctx, productID, in.Quantity, entity.TransactionTypeRESTOCK, in.PerformedBy, NoteRestock)
	if err != nil {
		return nil, err
	}
	return toStockUpdateResponse(tx, NoteRestock), nil
}

// Reduce descuenta quantity unidades por venta (SALE).
func (uc *StockLedgerUseCase) Reduce(ctx context.Context, productID string, in dto.StockQuantityRequest) (*dto.StockUpdateResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	tx, err := uc.apply(ctx, productID, -in.Quantity, entity.TransactionTypeSALE, in.PerformedBy, NoteReduce)
	if err != nil {
		return nil, err
	}
	return toStockUpdateResponse(tx, NoteReduce), nil
}

// apply bloquea la fila del registro, aplica el delta, persiste registro + transacción en la misma tx
// y, tras el commit, notifica STOCK_UPDATED (y LOW_STOCK_ALERT si una salida deja el stock en o bajo el reorden).
func (uc *StockLedgerUseCase) apply(
	ctx context.Context,
	productID string,
	delta int,
	txType, performedBy, notes string,
) (*entity.StockTransaction, error) {
	ctx, span := tracer.Start(ctx, "inventory.apply_delta")
	defer span.End()
	span.SetAttributes(
		attribute.String("inventory.product_id", productID),
		attribute.String("inventory.transaction_type", txType),
		attribute.Int("inventory.delta", delta),
	)

	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := inventory.ValidateDelta(txType, delta); err != nil {
		return nil, err
	}

	var (
		stx          *entity.StockTransaction
		reorderLevel int
	)
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		// Bloquea la fila (SELECT FOR UPDATE) para serializar deltas concurrentes del mismo producto
		record, err := invRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		t, err := inventory.ApplyDelta(record, delta, txType, performedBy, notes, uc.now())
		if err != nil {
			return err
		}
		t.ID = uuid.New().String()
		if err := invRepo.Update(ctx, record); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, t); err != nil {
			return err
		}
		stx = t
		reorderLevel = record.ReorderLevel
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("inventory.new_stock", stx.NewStock))
	span.SetStatus(codes.Ok, "stock updated")

	uc.notify(ctx, stx, reorderLevel)
	return stx, nil
}

func (uc *StockLedgerUseCase) notify(ctx context.Context, stx *entity.StockTransaction, reorderLevel int) {
	uc.publisher.PublishInventoryEvent(ctx, entity.InventoryEvent{
		EventType: entity.InventoryEventStockUpdated,
		ProductID: stx.ProductID,
		Quantity:  stx.NewStock,
		Threshold: reorderLevel,
		Timestamp: stx.Timestamp,
	})
	if stx.Quantity < 0 && stx.NewStock <= reorderLevel {
		uc.log.Ctx(ctx).Warn().
			Str("product_id", stx.ProductID).
			Int("stock", stx.NewStock).
			Int("reorder_level", reorderLevel).
			Msg("stock en o bajo el punto de reorden")
		uc.publisher.PublishInventoryEvent(ctx, entity.InventoryEvent{
			EventType: entity.InventoryEventLowStockAlert,
			ProductID: stx.ProductID,
			Quantity:  stx.NewStock,
			Threshold: reorderLevel,
			Timestamp: stx.Timestamp,
		})
	}
}

func toStockUpdateResponse(tx *entity.StockTransaction, msg string) *dto.StockUpdateResponse {
	return &dto.StockUpdateResponse{
		ProductID:     tx.ProductID,
		TransactionID: tx.ID,
		PreviousStock: tx.PreviousStock,
		NewStock:      tx.NewStock,
		Message:       msg,
	}
}
