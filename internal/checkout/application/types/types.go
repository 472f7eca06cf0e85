package types

import "github.com/shopflow/checkout/internal/checkout/domain"

// CheckoutStatus tracks a checkout transaction through its lifecycle.
type CheckoutStatus string

const (
	// StatusPending marks a transaction between snapshot and the stock decision.
	StatusPending CheckoutStatus = "pending"
	// StatusRejected marks a transaction the stock check turned down.
	StatusRejected CheckoutStatus = "rejected"
	// StatusAwaitingPayment marks a transaction suspended on the payment outcome.
	StatusAwaitingPayment CheckoutStatus = "awaiting_payment"
	// StatusCompleted marks a fully processed and invoiced transaction.
	StatusCompleted CheckoutStatus = "completed"
	// StatusCompensated marks a transaction rolled back after a declined payment.
	StatusCompensated CheckoutStatus = "compensated"
	// StatusFailed marks a transaction aborted by an infrastructure fault.
	StatusFailed CheckoutStatus = "failed"
)

// CheckoutInput carries an item list submitted for a stateless checkout,
// for example through the durable workflow path.
type CheckoutInput struct {
	Items          []domain.LineItem
	IdempotencyKey string
}

// CheckoutResult is the terminal (or suspended) state of one checkout
// transaction as observed by the client.
type CheckoutResult struct {
	OrderID domain.OrderID
	Status  CheckoutStatus
	Reason  string
	Invoice *domain.InvoiceRecord
}
