package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	checkoutmemory "github.com/shopflow/checkout/internal/checkout/adapters/memory"
	"github.com/shopflow/checkout/internal/checkout/adapters/simulation"
	checkoutworkflows "github.com/shopflow/checkout/internal/checkout/adapters/workflows"
	checkoutapp "github.com/shopflow/checkout/internal/checkout/application"
	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

func newTestRouter(t *testing.T, policy ports.PaymentPolicy, stockLevels map[domain.LineItem]int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	stock := checkoutmemory.NewStockRepository()
	stock.Seed(stockLevels)
	var seq int
	coordinator := checkoutapp.Assemble(checkoutapp.Dependencies{
		Stock:    stock,
		Audit:    checkoutmemory.NewAuditLog(),
		Orders:   checkoutmemory.NewOrderRepository(),
		Invoices: checkoutmemory.NewInvoiceRepository(),
		Payments: policy,
	}, checkoutapp.WithOrderIDs(func() domain.OrderID {
		seq++
		return domain.OrderID(fmt.Sprintf("order-%d", seq))
	}))
	orchestrator := checkoutworkflows.NewInlineCheckoutWorkflows(coordinator)
	return NewRouterWithGinEngine(gin.New(), coordinator, orchestrator)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddCartItem_ValidatesBody(t *testing.T) {
	router := newTestRouter(t, simulation.AlwaysApprove, map[domain.LineItem]int{"X": 5})

	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/cart/items", map[string]string{"item": "X"})
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetCart_ReportsItemsAndLastError(t *testing.T) {
	router := newTestRouter(t, simulation.AlwaysApprove, map[domain.LineItem]int{"X": 5})

	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", map[string]string{"item": "Z"})
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodPost, "/v1/checkout", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, "/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Equal(t, []string{"Z"}, cart.Items)
	require.Equal(t, "Stock is not available", cart.LastError)
}

func TestCheckout_CompletedReturnsInvoice(t *testing.T) {
	router := newTestRouter(t, simulation.AlwaysApprove, map[domain.LineItem]int{"X": 5, "Y": 5})

	w := doJSON(t, router, http.MethodPost, "/v1/checkout", map[string][]string{"items": {"X", "Y"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp checkoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Invoice)
	require.Equal(t, resp.OrderID, resp.Invoice.OrderID)
	require.Equal(t, []string{"X", "Y"}, resp.Invoice.Items)
	require.Equal(t, int64(200), resp.Invoice.TotalAmount)
}

func TestCheckout_EmptyCartIsBadRequest(t *testing.T) {
	router := newTestRouter(t, simulation.AlwaysApprove, nil)

	w := doJSON(t, router, http.MethodPost, "/v1/checkout", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_DeclinedPaymentMapsToPaymentRequired(t *testing.T) {
	router := newTestRouter(t, simulation.AlwaysDecline, map[domain.LineItem]int{"X": 5})

	w := doJSON(t, router, http.MethodPost, "/v1/checkout", map[string][]string{"items": {"X"}})
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp checkoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "compensated", resp.Status)
	require.Equal(t, "payment declined", resp.Reason)
	require.Nil(t, resp.Invoice)
}

func TestCheckout_StockRejectionMapsToConflict(t *testing.T) {
	router := newTestRouter(t, simulation.AlwaysApprove, nil)

	w := doJSON(t, router, http.MethodPost, "/v1/checkout", map[string][]string{"items": {"Z"}})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp checkoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "rejected", resp.Status)
	require.Equal(t, "Stock is not available", resp.Reason)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, simulation.AlwaysApprove, nil)

	w := doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
