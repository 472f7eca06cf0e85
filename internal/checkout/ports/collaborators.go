package ports

import (
	"context"

	"github.com/shopflow/checkout/internal/checkout/domain"
)

// Notifier is the narrow callback capability handed to collaborators. It is
// the only edge back to the coordinator; collaborators never hold references
// to each other. Unrecognized (role, event) pairs are no-ops, since the
// coordinator's dispatch table is intentionally partial.
type Notifier interface {
	Notify(ctx context.Context, role domain.Role, event domain.Event, payload any)
}

// Cart holds the line items a customer intends to buy plus the last
// user-visible error. Cart state is owned exclusively by the cart.
type Cart interface {
	AddItem(ctx context.Context, item domain.LineItem) error
	// Checkout signals the coordinator that the current cart contents should
	// be submitted. The cart does not clear itself.
	Checkout(ctx context.Context)
	Items(ctx context.Context) []domain.LineItem
	// DisplayError records a user-visible rejection message; it never raises.
	DisplayError(ctx context.Context, msg string)
	LastError(ctx context.Context) (string, bool)
	// Restore clears the cart to empty. It is the compensating action for a
	// declined payment and doubles as the post-completion reset.
	Restore(ctx context.Context)
}

// StockService answers availability queries and mutates stock counters.
type StockService interface {
	// Check is a pure decision over current stock levels.
	Check(ctx context.Context, order *domain.Order) (domain.StockCheckResult, error)
	// Reduce decrements stock for each line item. Callers must have obtained
	// a positive Check for an equivalent order in the same transaction; the
	// precondition is not re-validated here.
	Reduce(ctx context.Context, order *domain.Order) error
}

// InventoryTracker records post-reduction inventory deltas. It is a
// best-effort audit sink: failures are reported but never block an order.
type InventoryTracker interface {
	Update(ctx context.Context, order *domain.Order) error
}

// PaymentGateway executes a payment attempt. Charge emits exactly one of
// payment.succeeded/payment.failed through the notifier, even on an internal
// fault (surfaced as a failure so the compensating path always runs).
type PaymentGateway interface {
	Charge(ctx context.Context, order *domain.Order)
}

// InvoiceGenerator produces an invoice from a completed order. Generate is
// pure and deterministic for identical order content.
type InvoiceGenerator interface {
	Generate(order *domain.Order) domain.InvoiceRecord
}

// OrderProcessor advances an order through processing and completion.
// Complete is never called without a prior Process for the same order; the
// coordinator enforces that ordering.
type OrderProcessor interface {
	Process(ctx context.Context, order *domain.Order) error
	Complete(ctx context.Context, order *domain.Order, invoice domain.InvoiceRecord) error
}
