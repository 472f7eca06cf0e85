package domain

// InvoiceRecord is the billing document produced for a completed order.
// It is immutable after creation.
type InvoiceRecord struct {
	OrderID     OrderID
	Items       []LineItem
	TotalAmount int64
}
