package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
)

// NoteInitialStock nota de la transacción que registra el stock inicial de un producto nuevo.
const NoteInitialStock = "Initial stock"

// InventoryUseCase administración de registros de inventario: alta, consultas, parámetros e historial.
// Los cambios de stock NO pasan por aquí (ver StockLedgerUseCase), salvo el stock inicial.
type InventoryUseCase struct {
	repo     repository.InventoryRepository
	txRepo   repository.StockTransactionRepository
	txRunner TxRunner
	products ports.ProductDirectory
	now      func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	repo repository.InventoryRepository,
	txRepo repository.StockTransactionRepository,
	txRunner TxRunner,
	products ports.ProductDirectory,
) *InventoryUseCase {
	return &InventoryUseCase{
		repo:     repo,
		txRepo:   txRepo,
		txRunner: txRunner,
		products: products,
		now:      time.Now,
	}
}

// Create da de alta el inventario de un producto existente en el catálogo. Stock inicial 0.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if err := inventory.ValidateLimits(in.ReorderLevel, in.MaxCapacity, 0); err != nil {
		return nil, err
	}
	product, err := uc.products.GetProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	location := in.Location
	if location == "" {
		location = entity.DefaultLocation
	}
	now := uc.now()
	record := &entity.InventoryRecord{
		ProductID:    in.ProductID,
		ProductName:  product.Name,
		CurrentStock: 0,
		ReorderLevel: in.ReorderLevel,
		MaxCapacity:  in.MaxCapacity,
		Location:     location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return ToInventoryResponse(record), nil
}

// CreateFromProduct crea el registro con valores por defecto (reorden 10, capacidad 100, "Warehouse A").
// Un stock inicial positivo queda en el ledger como RESTOCK "Initial stock" dentro de la misma transacción.
func (uc *InventoryUseCase) CreateFromProduct(ctx context.Context, in dto.CreateFromProductRequest) (*dto.InventoryResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := inventory.ValidateLimits(entity.DefaultReorderLevel, entity.DefaultMaxCapacity, in.InitialStock); err != nil {
		return nil, err
	}
	now := uc.now()
	zero := decimal.Zero
	record := &entity.InventoryRecord{
		ProductID:               in.ProductID,
		ProductName:             in.ProductName,
		CurrentStock:            in.InitialStock,
		ReorderLevel:            entity.DefaultReorderLevel,
		MaxCapacity:             entity.DefaultMaxCapacity,
		Location:                entity.DefaultLocation,
		AverageDailyConsumption: &zero,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if in.InitialStock > 0 {
		record.LastRestocked = &now
	}

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		existing, err := invRepo.GetByProductID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := invRepo.Create(ctx, record); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		return txRepo.Create(ctx, &entity.StockTransaction{
			ID:            uuid.New().String(),
			ProductID:     in.ProductID,
			Type:          entity.TransactionTypeRESTOCK,
			Quantity:      in.InitialStock,
			PreviousStock: 0,
			NewStock:      in.InitialStock,
			Timestamp:     now,
			PerformedBy:   inventory.DefaultPerformer,
			Notes:         NoteInitialStock,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToInventoryResponse(record), nil
}

// Get obtiene el registro de un producto.
func (uc *InventoryUseCase) Get(ctx context.Context, productID string) (*dto.InventoryResponse, error) {
	record, err := uc.getRecord(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToInventoryResponse(record), nil
}

// List lista registros paginados (page desde 0).
func (uc *InventoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Page, page.PageSize)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryListResponse{
		Items: toInventoryResponses(list),
		Page:  dto.PageResponse{Page: page.Page, PageSize: page.PageSize},
	}, nil
}

// ListLowStock registros con stock en o bajo el punto de reorden.
func (uc *InventoryUseCase) ListLowStock(ctx context.Context) ([]dto.InventoryResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toInventoryResponses(list), nil
}

// UpdateReorderLevel cambia el punto de reorden (> 0).
func (uc *InventoryUseCase) UpdateReorderLevel(ctx context.Context, productID string, in dto.UpdateReorderLevelRequest) (*dto.InventoryResponse, error) {
	if in.ReorderLevel <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.update(ctx, productID, func(r *entity.InventoryRecord) {
		r.ReorderLevel = in.ReorderLevel
	})
}

// UpdateConsumption fija el consumo diario manual (>= 0). Cero vuelve al cálculo desde ventas.
func (uc *InventoryUseCase) UpdateConsumption(ctx context.Context, productID string, in dto.UpdateConsumptionRequest) (*dto.InventoryResponse, error) {
	if in.AverageDailyConsumption.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	rate := in.AverageDailyConsumption
	return uc.update(ctx, productID, func(r *entity.InventoryRecord) {
		r.AverageDailyConsumption = &rate
	})
}

// RenameProduct refresca el nombre denormalizado tras un cambio en el catálogo.
// Devuelve ErrNotFound si el producto no tiene inventario.
func (uc *InventoryUseCase) RenameProduct(ctx context.Context, productID, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	_, err := uc.update(ctx, productID, func(r *entity.InventoryRecord) {
		r.ProductName = name
	})
	return err
}

// update bloquea la fila y aplica mutate dentro de una transacción.
func (uc *InventoryUseCase) update(ctx context.Context, productID string, mutate func(*entity.InventoryRecord)) (*dto.InventoryResponse, error) {
	var updated *entity.InventoryRecord
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.StockTransactionRepository,
	) error {
		record, err := invRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		mutate(record)
		record.UpdatedAt = uc.now()
		if err := invRepo.Update(ctx, record); err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToInventoryResponse(updated), nil
}

// History transacciones de un producto, más recientes primero; txType vacío = todas.
func (uc *InventoryUseCase) History(ctx context.Context, productID, txType string, page dto.PageRequest) ([]dto.StockTransactionResponse, error) {
	if txType != "" && !isTransactionType(txType) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.getRecord(ctx, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.txRepo.ListByProduct(ctx, productID, txType, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(list), nil
}

// HistoryBetween transacciones de todos los productos en [from, to].
func (uc *InventoryUseCase) HistoryBetween(ctx context.Context, from, to time.Time) ([]dto.StockTransactionResponse, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.txRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(list), nil
}

func (uc *InventoryUseCase) getRecord(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func isTransactionType(t string) bool {
	switch t {
	case entity.TransactionTypeRESTOCK, entity.TransactionTypeSALE,
		entity.TransactionTypeDAMAGED, entity.TransactionTypeRETURNED:
		return true
	}
	return false
}

// ToInventoryResponse convierte el registro al DTO de salida.
func ToInventoryResponse(r *entity.InventoryRecord) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ProductID:               r.ProductID,
		ProductName:             r.ProductName,
		CurrentStock:            r.CurrentStock,
		ReorderLevel:            r.ReorderLevel,
		MaxCapacity:             r.MaxCapacity,
		Location:                r.Location,
		AverageDailyConsumption: r.AverageDailyConsumption,
		LastRestocked:           r.LastRestocked,
		LowStock:                r.IsLowStock(),
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

func toInventoryResponses(list []*entity.InventoryRecord) []dto.InventoryResponse {
	out := make([]dto.InventoryResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *ToInventoryResponse(r))
	}
	return out
}

func toTransactionResponses(list []*entity.StockTransaction) []dto.StockTransactionResponse {
	out := make([]dto.StockTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.StockTransactionResponse{
			ID:            t.ID,
			ProductID:     t.ProductID,
			Type:          t.Type,
			Quantity:      t.Quantity,
			PreviousStock: t.PreviousStock,
			NewStock:      t.NewStock,
			Timestamp:     t.Timestamp,
			PerformedBy:   t.PerformedBy,
			Notes:         t.Notes,
		})
	}
	return out
}
