package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	checkouttypes "github.com/shopflow/checkout/internal/checkout/application/types"
	"github.com/shopflow/checkout/internal/checkout/ports"
	checkoutworkflows "github.com/shopflow/checkout/internal/durable/temporal/workflows/checkout"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalCheckoutWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineCheckoutWorkflows)(nil)
)

// TemporalCheckoutWorkflows starts checkout workflows on a Temporal cluster.
type TemporalCheckoutWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckoutWorkflows wires a Temporal client into the orchestrator.
func NewTemporalCheckoutWorkflows(c client.Client) *TemporalCheckoutWorkflows {
	return &TemporalCheckoutWorkflows{client: c, taskQueue: checkoutworkflows.CheckoutTaskQueue}
}

// Checkout starts the Temporal workflow that runs a checkout transaction and
// waits for it to settle.
func (o *TemporalCheckoutWorkflows) Checkout(ctx context.Context, input checkouttypes.CheckoutInput) (*checkouttypes.CheckoutResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildCheckoutWorkflowID(input, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.CheckoutWorkflow,
		checkoutworkflows.CheckoutWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		// A resubmission under the same idempotency key reattaches to the
		// running workflow instead of reserving stock a second time.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && input.IdempotencyKey != "" {
			run = o.client.GetWorkflow(ctx, options.ID, "")
		} else {
			return nil, err
		}
	}
	var result checkouttypes.CheckoutResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InlineCheckoutWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlineCheckoutWorkflows struct {
	service ports.Service
}

// NewInlineCheckoutWorkflows wraps the checkout service for synchronous execution.
func NewInlineCheckoutWorkflows(service ports.Service) *InlineCheckoutWorkflows {
	return &InlineCheckoutWorkflows{service: service}
}

// Checkout delegates to the application service without durable orchestration.
func (o *InlineCheckoutWorkflows) Checkout(ctx context.Context, input checkouttypes.CheckoutInput) (*checkouttypes.CheckoutResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout workflows not configured")
	}
	for _, item := range input.Items {
		if err := o.service.AddItemToCart(ctx, item); err != nil {
			return nil, err
		}
	}
	return o.service.Checkout(ctx)
}

// buildCheckoutWorkflowID derives a stable ID from the caller's idempotency
// key so a retried submission reattaches to the running workflow instead of
// reserving stock twice.
func buildCheckoutWorkflowID(input checkouttypes.CheckoutInput, traceComponent string) string {
	if input.IdempotencyKey != "" {
		sum := sha256.Sum256([]byte(input.IdempotencyKey))
		return fmt.Sprintf("checkout-idem-%s", hex.EncodeToString(sum[:8]))
	}
	return fmt.Sprintf("checkout-%d-%s", time.Now().UnixNano(), traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
