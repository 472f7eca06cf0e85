package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shopflow/checkout/internal/checkout/application/types"
	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var (
	_ ports.Service  = (*Coordinator)(nil)
	_ ports.Notifier = (*Coordinator)(nil)
)

// Coordinator is the mediator of the checkout workflow. It is the only
// component aware of the full sequence: collaborators perform their local
// operation and report exactly one outcome back through Notify. Per-order
// state is keyed by order ID so concurrent transactions never share fields.
type Coordinator struct {
	cart      ports.Cart
	stock     ports.StockService
	inventory ports.InventoryTracker
	gateway   ports.PaymentGateway
	invoices  ports.InvoiceGenerator
	orders    ports.OrderProcessor

	logger *slog.Logger
	newID  func() domain.OrderID

	// checkoutMu serializes client-driven checkouts end to end, so a
	// stock decision and the reduction it authorizes are never interleaved
	// with another transaction.
	checkoutMu sync.Mutex

	mu       sync.Mutex
	inflight map[domain.OrderID]*transaction
	settled  map[domain.OrderID]*transaction
	lastTx   domain.OrderID
}

// transaction is the coordinator's retained per-order state.
type transaction struct {
	order   *domain.Order
	status  types.CheckoutStatus
	reason  string
	invoice *domain.InvoiceRecord
}

func (t *transaction) result() *types.CheckoutResult {
	return &types.CheckoutResult{
		OrderID: t.order.ID(),
		Status:  t.status,
		Reason:  t.reason,
		Invoice: t.invoice,
	}
}

// Option customizes coordinator construction.
type Option func(*Coordinator)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOrderIDs overrides the order ID source for deterministic testing.
func WithOrderIDs(next func() domain.OrderID) Option {
	return func(c *Coordinator) {
		if next != nil {
			c.newID = next
		}
	}
}

// NewCoordinator constructs an unwired coordinator shell. Collaborators are
// built against its Notifier capability and bound once via Attach.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:    func() domain.OrderID { return domain.OrderID(uuid.NewString()) },
		inflight: map[domain.OrderID]*transaction{},
		settled:  map[domain.OrderID]*transaction{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Attach completes assembly with the six collaborator handles. It is called
// exactly once, immediately after the collaborators are constructed.
func (c *Coordinator) Attach(
	cart ports.Cart,
	stock ports.StockService,
	inventory ports.InventoryTracker,
	gateway ports.PaymentGateway,
	invoices ports.InvoiceGenerator,
	orders ports.OrderProcessor,
) {
	c.cart = cart
	c.stock = stock
	c.inventory = inventory
	c.gateway = gateway
	c.invoices = invoices
	c.orders = orders
}

// AddItemToCart delegates to the cart.
func (c *Coordinator) AddItemToCart(ctx context.Context, item domain.LineItem) error {
	if err := c.cart.AddItem(ctx, item); err != nil {
		return mapError(err)
	}
	return nil
}

// Checkout submits the current cart. The cart signals back through Notify,
// which runs the transaction; by the time the cart call returns, the
// transaction has reached a resting state we can report.
func (c *Coordinator) Checkout(ctx context.Context) (*types.CheckoutResult, error) {
	c.checkoutMu.Lock()
	defer c.checkoutMu.Unlock()

	c.mu.Lock()
	c.lastTx = ""
	c.mu.Unlock()

	c.cart.Checkout(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.lastTx
	if id == "" {
		return nil, ErrEmptyCart
	}
	if tx, ok := c.settled[id]; ok {
		return tx.result(), nil
	}
	if tx, ok := c.inflight[id]; ok {
		return tx.result(), nil
	}
	panic(fmt.Sprintf("checkout transaction %s vanished before settling", id))
}

// CartItems exposes the cart contents for queries.
func (c *Coordinator) CartItems(ctx context.Context) []domain.LineItem {
	return c.cart.Items(ctx)
}

// LastCartError exposes the cart's recorded rejection message.
func (c *Coordinator) LastCartError(ctx context.Context) (string, bool) {
	return c.cart.LastError(ctx)
}

// Notify routes a collaborator event through the dispatch table keyed by
// (role, event). The table is intentionally partial: unrecognized pairs are
// no-ops, not errors.
func (c *Coordinator) Notify(ctx context.Context, role domain.Role, event domain.Event, payload any) {
	switch {
	case role == domain.RoleCart && event == domain.EventCheckoutRequested:
		c.handleCheckoutRequested(ctx)
	case role == domain.RolePaymentGateway && event == domain.EventPaymentSucceeded:
		c.handlePaymentOutcome(ctx, event, payload)
	case role == domain.RolePaymentGateway && event == domain.EventPaymentFailed:
		c.handlePaymentOutcome(ctx, event, payload)
	default:
		c.logger.Debug("ignoring notification outside the dispatch table",
			slog.String("role", string(role)), slog.String("event", string(event)))
	}
}

func (c *Coordinator) handleCheckoutRequested(ctx context.Context) {
	order, err := domain.NewOrder(c.newID(), c.cart.Items(ctx))
	if err != nil {
		c.logger.Warn("checkout requested with empty cart")
		return
	}
	logger := c.logger.With(slog.String("order.id", string(order.ID())))

	tx := &transaction{order: order, status: types.StatusPending}
	c.mu.Lock()
	c.inflight[order.ID()] = tx
	c.lastTx = order.ID()
	c.mu.Unlock()

	result, err := c.stock.Check(ctx, order)
	if err != nil {
		// Faults on the decision path degrade to a rejection; the user sees
		// the standard unavailable message while the fault is logged.
		logger.Error("stock check failed", slog.String("error", err.Error()))
		result = domain.StockUnavailable()
	}
	if !result.OK {
		logger.Info("checkout rejected", slog.String("reason", result.Reason))
		c.cart.DisplayError(ctx, result.Reason)
		c.settle(tx, types.StatusRejected, result.Reason)
		return
	}

	if err := c.stock.Reduce(ctx, order); err != nil {
		if errors.Is(err, ports.ErrInsufficientStock) {
			// Checkouts are serialized, so the counters cannot have moved
			// since Check passed: this is a reduction without a valid check.
			panic(fmt.Sprintf("stock reduced without a passing check for order %s: %v", order.ID(), err))
		}
		logger.Error("stock reduction failed", slog.String("error", err.Error()))
		c.cart.DisplayError(ctx, "checkout could not reserve stock")
		c.settle(tx, types.StatusFailed, err.Error())
		return
	}

	if err := c.inventory.Update(ctx, order); err != nil {
		// Best-effort audit sink: never blocks order processing.
		logger.Warn("inventory audit update failed", slog.String("error", err.Error()))
	}

	if err := c.orders.Process(ctx, order); err != nil {
		logger.Error("order processing failed", slog.String("error", err.Error()))
		c.cart.DisplayError(ctx, "checkout could not start order processing")
		c.settle(tx, types.StatusFailed, err.Error())
		return
	}

	c.mu.Lock()
	tx.status = types.StatusAwaitingPayment
	c.mu.Unlock()
	logger.Info("order processing started, awaiting payment", slog.Int("items", order.Len()))

	c.gateway.Charge(ctx, order)
}

func (c *Coordinator) handlePaymentOutcome(ctx context.Context, event domain.Event, payload any) {
	outcome, ok := payload.(domain.PaymentOutcome)
	if !ok {
		panic(fmt.Sprintf("payment event %s delivered with payload %T, want domain.PaymentOutcome", event, payload))
	}
	tx := c.take(outcome.OrderID)
	if tx == nil {
		return // duplicate delivery, already guarded
	}
	logger := c.logger.With(slog.String("order.id", string(outcome.OrderID)))

	if !outcome.Approved {
		// Compensating action: only the cart is rolled back. The stock
		// reduction stands; that is the rollback's entire blast radius.
		logger.Info("payment declined, restoring cart")
		c.cart.Restore(ctx)
		c.settle(tx, types.StatusCompensated, "payment declined")
		return
	}

	// Compensation and completion both act on the retained order, never on
	// gateway-supplied data.
	order := tx.order
	invoice := c.invoices.Generate(order)
	if err := c.orders.Complete(ctx, order, invoice); err != nil {
		logger.Error("order completion failed", slog.String("error", err.Error()))
		c.settle(tx, types.StatusFailed, err.Error())
		return
	}
	c.mu.Lock()
	tx.invoice = &invoice
	c.mu.Unlock()

	// Post-completion policy: the cart is emptied so a second checkout
	// cannot resubmit the ordered items.
	c.cart.Restore(ctx)
	c.settle(tx, types.StatusCompleted, "")
	logger.Info("order completed", slog.Int64("invoice.total", invoice.TotalAmount))
}

// take claims the in-flight transaction for a payment outcome. A settled
// order means duplicate delivery and is ignored with a warning; an order the
// coordinator never processed is a defect and fails loudly.
func (c *Coordinator) take(id domain.OrderID) *transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tx, ok := c.inflight[id]; ok {
		if tx.status != types.StatusAwaitingPayment {
			panic(fmt.Sprintf("payment outcome for order %s before processing started", id))
		}
		delete(c.inflight, id)
		return tx
	}
	if _, ok := c.settled[id]; ok {
		c.logger.Warn("duplicate payment outcome ignored", slog.String("order.id", string(id)))
		return nil
	}
	panic(fmt.Sprintf("payment outcome for unknown order %s", id))
}

func (c *Coordinator) settle(tx *transaction, status types.CheckoutStatus, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx.status = status
	tx.reason = reason
	delete(c.inflight, tx.order.ID())
	c.settled[tx.order.ID()] = tx
}
