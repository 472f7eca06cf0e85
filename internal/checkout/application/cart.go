package application

import (
	"context"
	"strings"
	"sync"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.Cart = (*Cart)(nil)

// Cart accumulates line items until checkout. It owns its state exclusively:
// no other component reaches into it, and it reports only to the notifier.
type Cart struct {
	notifier ports.Notifier

	mu      sync.Mutex
	items   []domain.LineItem
	lastErr string
	hasErr  bool
}

// NewCart wires a cart against the coordinator's callback capability.
func NewCart(notifier ports.Notifier) *Cart {
	return &Cart{notifier: notifier}
}

// AddItem appends an item. The only validation is a non-empty identifier.
func (c *Cart) AddItem(_ context.Context, item domain.LineItem) error {
	if strings.TrimSpace(string(item)) == "" {
		return domain.ErrEmptyItem
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return nil
}

// Checkout signals the coordinator. The cart keeps its contents; clearing
// happens only through Restore.
func (c *Cart) Checkout(ctx context.Context) {
	c.notifier.Notify(ctx, domain.RoleCart, domain.EventCheckoutRequested, nil)
}

// Items returns a copy of the current cart contents.
func (c *Cart) Items(_ context.Context) []domain.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// DisplayError records the rejection message for later queries.
func (c *Cart) DisplayError(_ context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = msg
	c.hasErr = true
}

// LastError returns the most recent rejection message, if any.
func (c *Cart) LastError(_ context.Context) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr, c.hasErr
}

// Restore resets the cart state to empty.
func (c *Cart) Restore(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.lastErr = ""
	c.hasErr = false
}
