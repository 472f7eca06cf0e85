package checkout

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	checkouttypes "github.com/shopflow/checkout/internal/checkout/application/types"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

const (
	// RunCheckoutActivityName fills the cart and submits it in one activity.
	RunCheckoutActivityName = "checkout.activities.RunCheckout"
)

// Activities groups activities that operate on the checkout bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the checkout service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// RunCheckout adds the requested items to the cart and runs the checkout
// transaction. It is not idempotent: stock is reserved as a side effect, so
// the caller must not retry it.
func (a *Activities) RunCheckout(ctx context.Context, input checkouttypes.CheckoutInput) (*checkouttypes.CheckoutResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("checkout activity not initialized")
		return nil, errors.New("checkout activity not initialized")
	}
	logger.Info("RunCheckout activity started", "items", len(input.Items))
	for _, item := range input.Items {
		if err := a.service.AddItemToCart(ctx, item); err != nil {
			logger.Error("RunCheckout activity rejected item", "item", string(item), "error", err)
			return nil, err
		}
	}
	result, err := a.service.Checkout(ctx)
	if err != nil {
		logger.Error("RunCheckout activity failed", "error", err)
		return nil, err
	}
	if result != nil {
		logger.Info("RunCheckout activity completed", "orderId", string(result.OrderID), "status", string(result.Status))
	} else {
		logger.Info("RunCheckout activity completed")
	}
	return result, nil
}
