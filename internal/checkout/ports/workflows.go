package ports

import (
	"context"

	"github.com/shopflow/checkout/internal/checkout/application/types"
)

// WorkflowOrchestrator runs a stateless item-list checkout, durably when a
// workflow engine is configured and inline otherwise.
type WorkflowOrchestrator interface {
	Checkout(ctx context.Context, input types.CheckoutInput) (*types.CheckoutResult, error)
}
