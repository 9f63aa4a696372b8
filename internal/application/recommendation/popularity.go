package recommendation

import (
	"sort"
	"sync"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
)

// PopularityTracker acumula en memoria las unidades pedidas por producto (eventos de orden CREATED).
// Seguro para uso concurrente; el estado vive lo que vive el proceso.
type PopularityTracker struct {
	mu     sync.RWMutex
	units  map[string]int
	events map[string]int
}

// NewPopularityTracker construye un tracker vacío.
func NewPopularityTracker() *PopularityTracker {
	return &PopularityTracker{
		units:  make(map[string]int),
		events: make(map[string]int),
	}
}

// Track suma quantity unidades al producto. Ignora IDs vacíos y cantidades no positivas.
func (t *PopularityTracker) Track(productID string, quantity int) {
	if productID == "" || quantity <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.units[productID] += quantity
	t.events[productID]++
}

// Top devuelve los n productos más pedidos (n <= 0 = todos), por unidades y luego por ID.
func (t *PopularityTracker) Top(n int) []dto.PopularProductDTO {
	t.mu.RLock()
	out := make([]dto.PopularProductDTO, 0, len(t.units))
	for id, units := range t.units {
		out = append(out, dto.PopularProductDTO{ProductID: id, OrderedUnits: units, OrderEvents: t.events[id]})
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderedUnits != out[j].OrderedUnits {
			return out[i].OrderedUnits > out[j].OrderedUnits
		}
		return out[i].ProductID < out[j].ProductID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
