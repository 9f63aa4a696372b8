// Package inventory contiene los servicios de dominio del motor de stock: aplicación de deltas,
// estimación de consumo y reglas de recomendación. Funciones puras, sin I/O.
package inventory

import (
	"time"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

// DefaultPerformer se usa cuando la petición no indica quién realiza el movimiento.
const DefaultPerformer = "system"

// ValidateDelta verifica que el signo del delta corresponda al tipo de transacción.
// RESTOCK y RETURNED suman; SALE y DAMAGED restan. Delta cero nunca es válido.
func ValidateDelta(txType string, delta int) error {
	if delta == 0 {
		return domain.ErrInvalidInput
	}
	switch txType {
	case entity.TransactionTypeRESTOCK, entity.TransactionTypeRETURNED:
		if delta < 0 {
			return domain.ErrInvalidInput
		}
	case entity.TransactionTypeSALE, entity.TransactionTypeDAMAGED:
		if delta > 0 {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyDelta aplica delta al registro y devuelve la transacción a registrar en el ledger.
//
//	NuevoStock = StockActual + delta
//
// Falla con ErrInsufficientStock si NuevoStock < 0 y con ErrCapacityExceeded si supera MaxCapacity;
// en ambos casos el registro queda intacto. La transacción devuelta no trae ID (lo asigna el caso de uso).
func ApplyDelta(
	record *entity.InventoryRecord,
	delta int,
	txType, performedBy, notes string,
	now time.Time,
) (*entity.StockTransaction, error) {
	if err := ValidateDelta(txType, delta); err != nil {
		return nil, err
	}
	previous := record.CurrentStock
	newStock := previous + delta
	if newStock < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if newStock > record.MaxCapacity {
		return nil, domain.ErrCapacityExceeded
	}
	if performedBy == "" {
		performedBy = DefaultPerformer
	}

	record.CurrentStock = newStock
	record.UpdatedAt = now
	if txType == entity.TransactionTypeRESTOCK && delta > 0 {
		restocked := now
		record.LastRestocked = &restocked
	}

	return &entity.StockTransaction{
		ProductID:     record.ProductID,
		Type:          txType,
		Quantity:      delta,
		PreviousStock: previous,
		NewStock:      newStock,
		Timestamp:     now,
		PerformedBy:   performedBy,
		Notes:         notes,
	}, nil
}

// ValidateLimits valida los parámetros de un registro al crearlo o modificarlo.
// ReorderLevel > 0 evita la división por cero en la clasificación de urgencia.
func ValidateLimits(reorderLevel, maxCapacity, currentStock int) error {
	if reorderLevel <= 0 || maxCapacity <= 0 {
		return domain.ErrInvalidInput
	}
	if currentStock < 0 || currentStock > maxCapacity {
		return domain.ErrInvalidInput
	}
	return nil
}
