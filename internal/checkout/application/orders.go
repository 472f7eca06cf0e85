package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.OrderProcessor = (*OrderProcessor)(nil)

// OrderProcessor is the system of record for order progression. It does not
// re-check call ordering: the coordinator guarantees Process precedes
// Complete for the same order.
type OrderProcessor struct {
	orders   ports.OrderRepository
	invoices ports.InvoiceRepository
	now      func() time.Time
}

// NewOrderProcessor wires the processor with its repositories.
func NewOrderProcessor(orders ports.OrderRepository, invoices ports.InvoiceRepository) *OrderProcessor {
	return &OrderProcessor{orders: orders, invoices: invoices, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (p *OrderProcessor) WithClock(now func() time.Time) {
	if now != nil {
		p.now = now
	}
}

// Process marks the order as processing.
func (p *OrderProcessor) Process(ctx context.Context, order *domain.Order) error {
	record := ports.OrderRecord{
		ID:        order.ID(),
		Items:     order.Items(),
		Status:    ports.OrderStatusProcessing,
		UpdatedAt: p.now(),
	}
	if err := p.orders.Save(ctx, record); err != nil {
		return fmt.Errorf("save processing order %s: %w", order.ID(), err)
	}
	return nil
}

// Complete marks the order as completed and binds its invoice.
func (p *OrderProcessor) Complete(ctx context.Context, order *domain.Order, invoice domain.InvoiceRecord) error {
	record := ports.OrderRecord{
		ID:        order.ID(),
		Items:     order.Items(),
		Status:    ports.OrderStatusCompleted,
		UpdatedAt: p.now(),
	}
	if err := p.orders.Save(ctx, record); err != nil {
		return fmt.Errorf("save completed order %s: %w", order.ID(), err)
	}
	if err := p.invoices.Save(ctx, invoice); err != nil {
		return fmt.Errorf("save invoice for order %s: %w", order.ID(), err)
	}
	return nil
}
