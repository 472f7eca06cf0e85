package ports

import (
	"context"

	"github.com/shopflow/checkout/internal/checkout/domain"
)

// PaymentPolicy decides the outcome of a payment attempt. Implementations
// may consult an external processor; an error is surfaced by the gateway as
// a declined payment so the compensating path always runs.
type PaymentPolicy interface {
	Authorize(ctx context.Context, order *domain.Order) (bool, error)
}

// PaymentPolicyFunc adapts a function to the PaymentPolicy interface.
type PaymentPolicyFunc func(ctx context.Context, order *domain.Order) (bool, error)

// Authorize implements PaymentPolicy.
func (f PaymentPolicyFunc) Authorize(ctx context.Context, order *domain.Order) (bool, error) {
	return f(ctx, order)
}
