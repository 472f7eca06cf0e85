package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	checkouttypes "github.com/shopflow/checkout/internal/checkout/application/types"
	checkoutactivities "github.com/shopflow/checkout/internal/platform/temporal/activities/checkout"
)

// RunCheckoutSequence executes the single activity that drives a checkout
// transaction end to end. The activity reserves stock, so it runs with a
// single attempt; retries would double-reserve.
func RunCheckoutSequence(ctx workflow.Context, input checkouttypes.CheckoutInput) (*checkouttypes.CheckoutResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "items", len(input.Items))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}

	var result checkouttypes.CheckoutResult
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), checkoutactivities.RunCheckoutActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("checkout sequence failed", "error", err)
		return nil, err
	}
	logger.Info("checkout sequence settled", "orderId", string(result.OrderID), "status", string(result.Status))
	return &result, nil
}
