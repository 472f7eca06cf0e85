package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopflow/checkout/internal/checkout/application"
	"github.com/shopflow/checkout/internal/checkout/application/types"
	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

// CheckoutAPI handles the cart and checkout routes.
type CheckoutAPI struct {
	service      ports.Service
	orchestrator ports.WorkflowOrchestrator
}

// NewCheckoutAPI wires the driving port and the workflow orchestrator into the handlers.
func NewCheckoutAPI(service ports.Service, orchestrator ports.WorkflowOrchestrator) *CheckoutAPI {
	return &CheckoutAPI{service: service, orchestrator: orchestrator}
}

type addCartItemRequest struct {
	Item string `json:"item" binding:"required"`
}

type checkoutRequest struct {
	Items []string `json:"items"`
}

type cartResponse struct {
	Items     []string `json:"items"`
	LastError string   `json:"lastError,omitempty"`
}

type checkoutResponse struct {
	OrderID string           `json:"orderId,omitempty"`
	Status  string           `json:"status"`
	Reason  string           `json:"reason,omitempty"`
	Invoice *invoiceResponse `json:"invoice,omitempty"`
}

type invoiceResponse struct {
	OrderID     string   `json:"orderId"`
	Items       []string `json:"items"`
	TotalAmount int64    `json:"totalAmount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// AddCartItem appends one item to the cart.
func (api *CheckoutAPI) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "item is required"})
		return
	}
	if err := api.service.AddItemToCart(c.Request.Context(), domain.LineItem(req.Item)); err != nil {
		if errors.Is(err, application.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCart reports the cart contents and the last rejection message, if any.
func (api *CheckoutAPI) GetCart(c *gin.Context) {
	ctx := c.Request.Context()
	items := api.service.CartItems(ctx)
	resp := cartResponse{Items: make([]string, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, string(item))
	}
	if msg, ok := api.service.LastCartError(ctx); ok {
		resp.LastError = msg
	}
	c.JSON(http.StatusOK, resp)
}

// Checkout runs a checkout transaction. With a request body carrying items it
// goes through the workflow orchestrator; without one it submits the cart as
// previously filled through AddCartItem.
func (api *CheckoutAPI) Checkout(c *gin.Context) {
	ctx := c.Request.Context()

	var req checkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
			return
		}
	}

	var (
		result *types.CheckoutResult
		err    error
	)
	if len(req.Items) > 0 && api.orchestrator != nil {
		input := types.CheckoutInput{IdempotencyKey: c.GetHeader("Idempotency-Key")}
		for _, item := range req.Items {
			input.Items = append(input.Items, domain.LineItem(item))
		}
		result, err = api.orchestrator.Checkout(ctx, input)
	} else {
		result, err = api.service.Checkout(ctx)
	}
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmptyCart), errors.Is(err, application.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(statusCodeFor(result.Status), toCheckoutResponse(result))
}

func statusCodeFor(status types.CheckoutStatus) int {
	switch status {
	case types.StatusCompleted:
		return http.StatusOK
	case types.StatusAwaitingPayment:
		return http.StatusAccepted
	case types.StatusRejected:
		return http.StatusConflict
	case types.StatusCompensated:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func toCheckoutResponse(result *types.CheckoutResult) checkoutResponse {
	resp := checkoutResponse{
		OrderID: string(result.OrderID),
		Status:  string(result.Status),
		Reason:  result.Reason,
	}
	if result.Invoice != nil {
		invoice := invoiceResponse{
			OrderID:     string(result.Invoice.OrderID),
			Items:       make([]string, 0, len(result.Invoice.Items)),
			TotalAmount: result.Invoice.TotalAmount,
		}
		for _, item := range result.Invoice.Items {
			invoice.Items = append(invoice.Items, string(item))
		}
		resp.Invoice = &invoice
	}
	return resp
}
