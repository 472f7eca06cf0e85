package memory

import (
	"context"
	"sync"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.InvoiceRepository = (*InvoiceRepository)(nil)

// InvoiceRepository keeps invoices in memory.
type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[domain.OrderID]domain.InvoiceRecord
}

// NewInvoiceRepository constructs an empty invoice store.
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{invoices: map[domain.OrderID]domain.InvoiceRecord{}}
}

// Save stores the invoice keyed by its order.
func (r *InvoiceRepository) Save(_ context.Context, invoice domain.InvoiceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice.Items = append([]domain.LineItem{}, invoice.Items...)
	r.invoices[invoice.OrderID] = invoice
	return nil
}

// GetByOrderID returns the invoice bound to the given order.
func (r *InvoiceRepository) GetByOrderID(_ context.Context, id domain.OrderID) (*domain.InvoiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := invoice
	clone.Items = append([]domain.LineItem{}, invoice.Items...)
	return &clone, nil
}
