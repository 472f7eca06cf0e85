package application

import (
	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.InvoiceGenerator = (*InvoiceGenerator)(nil)

// DefaultItemAmount is billed for line items absent from the price table.
const DefaultItemAmount int64 = 100

// InvoiceGenerator derives invoices from orders. Generate is a pure
// function: no side effects, no mutable state, identical output for
// identical order content.
type InvoiceGenerator struct {
	prices map[domain.LineItem]int64
}

// NewInvoiceGenerator builds a generator over a copy of the price table.
func NewInvoiceGenerator(prices map[domain.LineItem]int64) *InvoiceGenerator {
	table := make(map[domain.LineItem]int64, len(prices))
	for item, amount := range prices {
		table[item] = amount
	}
	return &InvoiceGenerator{prices: table}
}

// Generate produces the invoice for an order.
func (g *InvoiceGenerator) Generate(order *domain.Order) domain.InvoiceRecord {
	var total int64
	for _, item := range order.Items() {
		amount, ok := g.prices[item]
		if !ok {
			amount = DefaultItemAmount
		}
		total += amount
	}
	return domain.InvoiceRecord{
		OrderID:     order.ID(),
		Items:       order.Items(),
		TotalAmount: total,
	}
}
