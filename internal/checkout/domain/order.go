package domain

import "errors"

// LineItem is the opaque identifier of a product in the cart and on an order.
type LineItem string

// OrderID uniquely identifies a checkout transaction.
type OrderID string

var (
	ErrEmptyItem  = errors.New("line item identifier is empty")
	ErrEmptyOrder = errors.New("order has no line items")
)

// Order is an immutable snapshot of the cart captured at checkout time.
// Cart mutations after capture never affect an in-flight order.
type Order struct {
	id    OrderID
	items []LineItem
}

// NewOrder captures the given items as an order snapshot under the supplied ID.
func NewOrder(id OrderID, items []LineItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	snapshot := make([]LineItem, len(items))
	copy(snapshot, items)
	return &Order{id: id, items: snapshot}, nil
}

// ID returns the order identifier.
func (o *Order) ID() OrderID { return o.id }

// Items returns a defensive copy of the ordered line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Len reports the number of line items on the order.
func (o *Order) Len() int { return len(o.items) }

// Quantities aggregates the order into per-item counts.
func (o *Order) Quantities() map[LineItem]int {
	counts := make(map[LineItem]int, len(o.items))
	for _, item := range o.items {
		counts[item]++
	}
	return counts
}
