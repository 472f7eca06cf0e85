package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.InventoryTracker = (*InventoryTracker)(nil)

// InventoryTracker records one audit entry per reduced line item.
type InventoryTracker struct {
	log ports.AuditLog
	now func() time.Time
}

// NewInventoryTracker wires the tracker with its audit sink.
func NewInventoryTracker(log ports.AuditLog) *InventoryTracker {
	return &InventoryTracker{log: log, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (t *InventoryTracker) WithClock(now func() time.Time) {
	if now != nil {
		t.now = now
	}
}

// Update records the inventory deltas for a reduced order.
func (t *InventoryTracker) Update(ctx context.Context, order *domain.Order) error {
	recordedAt := t.now()
	for item, qty := range order.Quantities() {
		entry := ports.AuditEntry{
			OrderID:    order.ID(),
			Item:       item,
			Delta:      -qty,
			RecordedAt: recordedAt,
		}
		if err := t.log.Record(ctx, entry); err != nil {
			return fmt.Errorf("record inventory delta for %q: %w", item, err)
		}
	}
	return nil
}
