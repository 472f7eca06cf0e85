package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopflow/checkout/internal/checkout/domain"
)

var (
	// ErrNotFound signals the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock signals a decrement would drive a counter negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockRepository owns the per-item stock counters (driven port).
type StockRepository interface {
	// Level reports the available quantity for an item; unknown items are 0.
	Level(ctx context.Context, item domain.LineItem) (int, error)
	// Decrement atomically subtracts qty, failing with ErrInsufficientStock
	// when the counter would go negative.
	Decrement(ctx context.Context, item domain.LineItem, qty int) error
	// SetLevel seeds or replaces the counter for an item.
	SetLevel(ctx context.Context, item domain.LineItem, qty int) error
}

// OrderStatus enumerates the order processor's system-of-record states.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
)

// OrderRecord is the order processor's view of a checkout transaction.
type OrderRecord struct {
	ID        domain.OrderID
	Items     []domain.LineItem
	Status    OrderStatus
	UpdatedAt time.Time
}

// OrderRepository persists order processing state (driven port).
type OrderRepository interface {
	Save(ctx context.Context, record OrderRecord) error
	GetByID(ctx context.Context, id domain.OrderID) (*OrderRecord, error)
}

// InvoiceRepository persists invoices bound at order completion (driven port).
type InvoiceRepository interface {
	Save(ctx context.Context, invoice domain.InvoiceRecord) error
	GetByOrderID(ctx context.Context, id domain.OrderID) (*domain.InvoiceRecord, error)
}

// AuditEntry is one inventory delta recorded by the tracker.
type AuditEntry struct {
	OrderID    domain.OrderID
	Item       domain.LineItem
	Delta      int
	RecordedAt time.Time
}

// AuditLog is the inventory tracker's sink (driven port).
type AuditLog interface {
	Record(ctx context.Context, entry AuditEntry) error
	Entries(ctx context.Context) ([]AuditEntry, error)
}
