package checkout

import (
	"go.temporal.io/sdk/workflow"

	checkouttypes "github.com/shopflow/checkout/internal/checkout/application/types"
	"github.com/shopflow/checkout/internal/durable/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "checkout.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkout workflows.
	CheckoutTaskQueue = "CHECKOUT"
)

// CheckoutWorkflowInput captures the payload required to run a checkout transaction.
type CheckoutWorkflowInput struct {
	Command checkouttypes.CheckoutInput
	TraceID string
}

// CheckoutWorkflow orchestrates the activity that runs a checkout transaction.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*checkouttypes.CheckoutResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "items", len(input.Command.Items))...)
	result, err := sequences.RunCheckoutSequence(ctx, input.Command)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	if result != nil {
		logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "orderId", string(result.OrderID), "status", string(result.Status))...)
	} else {
		logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID)...)
	}
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
