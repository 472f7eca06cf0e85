package application

import (
	"context"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.PaymentGateway = (*PaymentGateway)(nil)

// PaymentGateway executes payment attempts through an injected policy and
// reports the outcome back to the coordinator.
type PaymentGateway struct {
	notifier ports.Notifier
	policy   ports.PaymentPolicy
}

// NewPaymentGateway wires the gateway with the coordinator's callback
// capability and a decision policy.
func NewPaymentGateway(notifier ports.Notifier, policy ports.PaymentPolicy) *PaymentGateway {
	return &PaymentGateway{notifier: notifier, policy: policy}
}

// Charge attempts payment for the order and emits exactly one outcome. A
// policy fault is surfaced as a declined payment so the order is never
// silently dropped and the compensating path still runs.
func (g *PaymentGateway) Charge(ctx context.Context, order *domain.Order) {
	approved, err := g.policy.Authorize(ctx, order)
	if err != nil || !approved {
		g.notifier.Notify(ctx, domain.RolePaymentGateway, domain.EventPaymentFailed, domain.PaymentDeclined(order.ID()))
		return
	}
	g.notifier.Notify(ctx, domain.RolePaymentGateway, domain.EventPaymentSucceeded, domain.PaymentApproved(order))
}
