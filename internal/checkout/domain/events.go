package domain

// Role identifies which collaborator raised an event. Routing is keyed by
// role so dispatch never depends on reference identity.
type Role string

const (
	RoleCart             Role = "cart"
	RoleStockService     Role = "stock_service"
	RoleInventoryTracker Role = "inventory_tracker"
	RolePaymentGateway   Role = "payment_gateway"
	RoleInvoiceGenerator Role = "invoice_generator"
	RoleOrderProcessor   Role = "order_processor"
)

// Event names the signal a collaborator reports back to the coordinator.
type Event string

const (
	EventCheckoutRequested Event = "checkout.requested"
	EventPaymentSucceeded  Event = "payment.succeeded"
	EventPaymentFailed     Event = "payment.failed"
)
