package ports

import (
	"context"

	"github.com/shopflow/checkout/internal/checkout/application/types"
	"github.com/shopflow/checkout/internal/checkout/domain"
)

// Service defines the client-facing checkout use cases (inbound/driving port).
type Service interface {
	AddItemToCart(ctx context.Context, item domain.LineItem) error
	// Checkout submits the current cart and drives the transaction to its
	// next resting state (rejected, awaiting payment, completed, or
	// compensated, depending on how outcomes are delivered).
	Checkout(ctx context.Context) (*types.CheckoutResult, error)
	CartItems(ctx context.Context) []domain.LineItem
	LastCartError(ctx context.Context) (string, bool)
}
