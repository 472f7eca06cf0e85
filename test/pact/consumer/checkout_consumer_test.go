//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/shopflow/checkout/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type checkoutRequest struct {
	Items []string `json:"items"`
}

type checkoutResponse struct {
	OrderID string          `json:"orderId"`
	Status  string          `json:"status"`
	Reason  string          `json:"reason"`
	Invoice *invoicePayload `json:"invoice"`
}

type invoicePayload struct {
	OrderID     string   `json:"orderId"`
	Items       []string `json:"items"`
	TotalAmount int64    `json:"totalAmount"`
}

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	completedBodyMatcher := matchers.Map{
		"orderId": matchers.Like("order-1"),
		"status":  matchers.S("completed"),
		"invoice": matchers.StructMatcher{
			"orderId":     matchers.Like("order-1"),
			"items":       matchers.ArrayMinLike(pacttest.AvailableItemA, 1),
			"totalAmount": matchers.Like(200),
		},
	}
	rejectedBodyMatcher := matchers.Map{
		"orderId": matchers.Like("order-1"),
		"status":  matchers.S("rejected"),
		"reason":  matchers.S("Stock is not available"),
	}

	pact.AddInteraction().
		Given(pacttest.StateStockAvailable).
		UponReceiving("a checkout request for in-stock items").
		WithRequest("POST", "/v1/checkout", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"items": matchers.ArrayMinLike(pacttest.AvailableItemA, 1),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(completedBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateStockDepleted).
		UponReceiving("a checkout request for an out-of-stock item").
		WithRequest("POST", "/v1/checkout", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"items": matchers.ArrayMinLike(pacttest.DepletedItem, 1),
			})
		}).
		WillRespondWith(http.StatusConflict, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(rejectedBodyMatcher)
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newCheckoutClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		completed, status, err := client.Checkout(ctx, checkoutRequest{Items: []string{pacttest.AvailableItemA, pacttest.AvailableItemB}})
		if err != nil {
			return fmt.Errorf("checkout available: %w", err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("expected 200 for available stock, got %d", status)
		}
		if completed.Invoice == nil || completed.Invoice.OrderID == "" {
			return fmt.Errorf("expected a completed checkout to carry an invoice")
		}

		rejected, status, err := client.Checkout(ctx, checkoutRequest{Items: []string{pacttest.DepletedItem}})
		if err != nil {
			return fmt.Errorf("checkout depleted: %w", err)
		}
		if status != http.StatusConflict {
			return fmt.Errorf("expected 409 for depleted stock, got %d", status)
		}
		if rejected.Reason != "Stock is not available" {
			return fmt.Errorf("expected the standard unavailable reason, got %q", rejected.Reason)
		}

		return nil
	})
	require.NoError(t, err)
}

type checkoutClient struct {
	baseURL    string
	httpClient *http.Client
}

func newCheckoutClient(config pactconsumer.MockServerConfig) *checkoutClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &checkoutClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *checkoutClient) Checkout(ctx context.Context, payload checkoutRequest) (*checkoutResponse, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	var decoded checkoutResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, res.StatusCode, err
	}
	return &decoded, res.StatusCode, nil
}
