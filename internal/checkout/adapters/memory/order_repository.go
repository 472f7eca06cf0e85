package memory

import (
	"context"
	"sync"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository keeps order processing records in memory.
type OrderRepository struct {
	mu      sync.RWMutex
	records map[domain.OrderID]ports.OrderRecord
}

// NewOrderRepository constructs an empty order store.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{records: map[domain.OrderID]ports.OrderRecord{}}
}

// Save inserts or replaces the record.
func (r *OrderRepository) Save(_ context.Context, record ports.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.Items = append([]domain.LineItem{}, record.Items...)
	r.records[record.ID] = record
	return nil
}

// GetByID returns the record for the given order.
func (r *OrderRepository) GetByID(_ context.Context, id domain.OrderID) (*ports.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := record
	clone.Items = append([]domain.LineItem{}, record.Items...)
	return &clone, nil
}
