package application

import (
	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

// Dependencies carries the driven ports needed to stand up a checkout.
type Dependencies struct {
	Stock    ports.StockRepository
	Audit    ports.AuditLog
	Orders   ports.OrderRepository
	Invoices ports.InvoiceRepository
	Payments ports.PaymentPolicy
	Prices   map[domain.LineItem]int64
}

// Assemble builds a fully wired coordinator. The collaborators receive only
// the coordinator's Notifier capability, never the whole coordinator, and
// the coordinator is the sole holder of all six collaborator handles.
func Assemble(deps Dependencies, opts ...Option) *Coordinator {
	coordinator := NewCoordinator(opts...)
	coordinator.Attach(
		NewCart(coordinator),
		NewStockService(deps.Stock),
		NewInventoryTracker(deps.Audit),
		NewPaymentGateway(coordinator, deps.Payments),
		NewInvoiceGenerator(deps.Prices),
		NewOrderProcessor(deps.Orders, deps.Invoices),
	)
	return coordinator
}
