package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/repository"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

// ProductEventHandler mantiene la réplica local del catálogo y los registros de inventario
// a partir de los eventos del servicio de productos.
type ProductEventHandler struct {
	products  repository.ProductRepository
	inventory *InventoryUseCase
	log       *logger.Logger
}

// NewProductEventHandler construye el handler.
func NewProductEventHandler(products repository.ProductRepository, inventory *InventoryUseCase, log *logger.Logger) *ProductEventHandler {
	return &ProductEventHandler{products: products, inventory: inventory, log: log}
}

// Handle procesa un evento de producto.
// CREATED: réplica + registro de inventario (un duplicado no es error).
// UPDATED: réplica + nombre del registro. DELETED: solo la réplica; el inventario se conserva.
func (h *ProductEventHandler) Handle(ctx context.Context, ev entity.ProductEvent) error {
	if ev.ProductID == "" {
		return domain.ErrInvalidInput
	}
	switch ev.EventType {
	case entity.ProductEventCreated:
		if err := h.products.Upsert(ctx, toProductInfo(ev)); err != nil {
			return err
		}
		_, err := h.inventory.CreateFromProduct(ctx, dto.CreateFromProductRequest{
			ProductID:    ev.ProductID,
			ProductName:  ev.Name,
			InitialStock: ev.InitialStock,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			h.log.Ctx(ctx).Debug().Str("product_id", ev.ProductID).Msg("inventario ya existe, evento CREATED ignorado")
			return nil
		}
		return err
	case entity.ProductEventUpdated:
		if err := h.products.Upsert(ctx, toProductInfo(ev)); err != nil {
			return err
		}
		if ev.Name == "" {
			return nil
		}
		err := h.inventory.RenameProduct(ctx, ev.ProductID, ev.Name)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	case entity.ProductEventDeleted:
		return h.products.Delete(ctx, ev.ProductID)
	default:
		h.log.Ctx(ctx).Warn().Str("event_type", ev.EventType).Str("product_id", ev.ProductID).Msg("tipo de evento de producto desconocido")
		return nil
	}
}

func toProductInfo(ev entity.ProductEvent) *entity.ProductInfo {
	return &entity.ProductInfo{
		ID:           ev.ProductID,
		Name:         ev.Name,
		Price:        ev.Price,
		Category:     ev.Category,
		SupplierID:   ev.SupplierID,
		SupplierName: ev.SupplierName,
		UpdatedAt:    time.Now(),
	}
}
