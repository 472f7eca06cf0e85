package memory

import (
	"context"
	"sync"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.StockRepository = (*StockRepository)(nil)

// StockRepository is an in-memory stock counter table for development and tests.
type StockRepository struct {
	mu     sync.RWMutex
	levels map[domain.LineItem]int
}

// NewStockRepository constructs an empty stock table.
func NewStockRepository() *StockRepository {
	return &StockRepository{levels: map[domain.LineItem]int{}}
}

// Seed bulk-loads initial stock levels.
func (r *StockRepository) Seed(levels map[domain.LineItem]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for item, qty := range levels {
		r.levels[item] = qty
	}
}

// Level reports the available quantity; unknown items are 0.
func (r *StockRepository) Level(_ context.Context, item domain.LineItem) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.levels[item], nil
}

// Decrement subtracts qty, refusing to drive the counter negative.
func (r *StockRepository) Decrement(_ context.Context, item domain.LineItem, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.levels[item] < qty {
		return ports.ErrInsufficientStock
	}
	r.levels[item] -= qty
	return nil
}

// SetLevel seeds or replaces the counter for an item.
func (r *StockRepository) SetLevel(_ context.Context, item domain.LineItem, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[item] = qty
	return nil
}
