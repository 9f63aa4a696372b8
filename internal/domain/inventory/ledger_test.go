package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newRecord(current, reorder, capacity int) *entity.InventoryRecord {
	return &entity.InventoryRecord{
		ProductID:    "p-1",
		ProductName:  "Tornillo 3/8",
		CurrentStock: current,
		ReorderLevel: reorder,
		MaxCapacity:  capacity,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_VentaRestaStock(t *testing.T) {
	rec := newRecord(40, 10, 100)

	tx, err := inventory.ApplyDelta(rec, -15, entity.TransactionTypeSALE, "ana", "venta mostrador", testNow)
	require.NoError(t, err)

	assert.Equal(t, 25, rec.CurrentStock)
	assert.Equal(t, 40, tx.PreviousStock)
	assert.Equal(t, 25, tx.NewStock)
	assert.Equal(t, -15, tx.Quantity)
	assert.Equal(t, "ana", tx.PerformedBy)
	assert.Nil(t, rec.LastRestocked, "una venta no toca lastRestocked")
}

func TestApplyDelta_RestockActualizaLastRestocked(t *testing.T) {
	rec := newRecord(10, 10, 100)

	tx, err := inventory.ApplyDelta(rec, 30, entity.TransactionTypeRESTOCK, "", "", testNow)
	require.NoError(t, err)

	assert.Equal(t, 40, rec.CurrentStock)
	require.NotNil(t, rec.LastRestocked)
	assert.Equal(t, testNow, *rec.LastRestocked)
	assert.Equal(t, inventory.DefaultPerformer, tx.PerformedBy, "sin performedBy se usa system")
}

func TestApplyDelta_DevolucionNoActualizaLastRestocked(t *testing.T) {
	rec := newRecord(10, 10, 100)

	_, err := inventory.ApplyDelta(rec, 5, entity.TransactionTypeRETURNED, "ana", "", testNow)
	require.NoError(t, err)
	assert.Nil(t, rec.LastRestocked)
}

// Escenario: delta -20 sobre stock 5 → InsufficientStock y estado intacto.
func TestApplyDelta_StockInsuficiente(t *testing.T) {
	rec := newRecord(5, 10, 100)

	tx, err := inventory.ApplyDelta(rec, -20, entity.TransactionTypeSALE, "ana", "", testNow)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, tx)
	assert.Equal(t, 5, rec.CurrentStock)
}

// Escenario: delta +50 sobre {60, max 100} → CapacityExceeded.
func TestApplyDelta_ExcedeCapacidad(t *testing.T) {
	rec := newRecord(60, 10, 100)

	_, err := inventory.ApplyDelta(rec, 50, entity.TransactionTypeRESTOCK, "ana", "", testNow)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 60, rec.CurrentStock)
	assert.Nil(t, rec.LastRestocked)
}

func TestApplyDelta_LimitesExactos(t *testing.T) {
	rec := newRecord(60, 10, 100)
	_, err := inventory.ApplyDelta(rec, 40, entity.TransactionTypeRESTOCK, "ana", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, 100, rec.CurrentStock, "llenar hasta maxCapacity es válido")

	_, err = inventory.ApplyDelta(rec, -100, entity.TransactionTypeDAMAGED, "ana", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.CurrentStock, "vaciar hasta 0 es válido")
}

// Propiedad: para cualquier delta, el stock queda en [0, max] y cada delta aceptado
// produce newStock == previousStock + delta.
func TestApplyDelta_PropiedadRango(t *testing.T) {
	for start := 0; start <= 20; start += 5 {
		for delta := -25; delta <= 25; delta++ {
			txType := entity.TransactionTypeRESTOCK
			if delta < 0 {
				txType = entity.TransactionTypeSALE
			}
			rec := newRecord(start, 5, 20)
			tx, err := inventory.ApplyDelta(rec, delta, txType, "prop", "", testNow)

			assert.GreaterOrEqual(t, rec.CurrentStock, 0)
			assert.LessOrEqual(t, rec.CurrentStock, rec.MaxCapacity)
			if err == nil {
				assert.Equal(t, tx.PreviousStock+delta, tx.NewStock)
				assert.Equal(t, start+delta, rec.CurrentStock)
			} else {
				assert.Equal(t, start, rec.CurrentStock, "un delta rechazado no muta el registro")
			}
		}
	}
}

func TestValidateDelta_SignoPorTipo(t *testing.T) {
	cases := []struct {
		name  string
		typ   string
		delta int
		ok    bool
	}{
		{"restock positivo", entity.TransactionTypeRESTOCK, 5, true},
		{"restock negativo", entity.TransactionTypeRESTOCK, -5, false},
		{"venta negativa", entity.TransactionTypeSALE, -5, true},
		{"venta positiva", entity.TransactionTypeSALE, 5, false},
		{"merma negativa", entity.TransactionTypeDAMAGED, -1, true},
		{"devolución positiva", entity.TransactionTypeRETURNED, 1, true},
		{"devolución negativa", entity.TransactionTypeRETURNED, -1, false},
		{"delta cero", entity.TransactionTypeRESTOCK, 0, false},
		{"tipo desconocido", "TRANSFER", 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.ValidateDelta(tc.typ, tc.delta)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestValidateLimits(t *testing.T) {
	assert.NoError(t, inventory.ValidateLimits(10, 100, 0))
	assert.NoError(t, inventory.ValidateLimits(10, 100, 100))
	assert.ErrorIs(t, inventory.ValidateLimits(0, 100, 0), domain.ErrInvalidInput, "reorden 0 no se admite")
	assert.ErrorIs(t, inventory.ValidateLimits(-1, 100, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateLimits(10, 0, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateLimits(10, 100, 101), domain.ErrInvalidInput)
}
