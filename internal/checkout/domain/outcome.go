package domain

// User-facing stock decision messages.
const (
	StockAvailableReason   = "Stock is available"
	StockUnavailableReason = "Stock is not available"
)

// StockCheckResult is a decision outcome, never a side effect. A negative
// result must not be accompanied by any stock mutation.
type StockCheckResult struct {
	OK     bool
	Reason string
}

// StockAvailable is the positive stock decision.
func StockAvailable() StockCheckResult {
	return StockCheckResult{OK: true, Reason: StockAvailableReason}
}

// StockUnavailable is the negative stock decision.
func StockUnavailable() StockCheckResult {
	return StockCheckResult{OK: false, Reason: StockUnavailableReason}
}

// PaymentOutcome is the tagged result of a payment attempt. A declined
// outcome carries only the order ID; compensation acts on the coordinator's
// retained in-flight order, not on gateway-supplied data.
type PaymentOutcome struct {
	OrderID  OrderID
	Approved bool
	Order    *Order // nil when declined
}

// PaymentApproved builds the success outcome carrying the charged order.
func PaymentApproved(order *Order) PaymentOutcome {
	return PaymentOutcome{OrderID: order.ID(), Approved: true, Order: order}
}

// PaymentDeclined builds the failure outcome for the given order.
func PaymentDeclined(id OrderID) PaymentOutcome {
	return PaymentOutcome{OrderID: id}
}
