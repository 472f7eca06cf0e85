//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "checkout-api"
	ConsumerName = "storefront"

	StateStockAvailable = "stock available for X and Y"
	StateStockDepleted  = "stock depleted for Z"
)

const (
	AvailableItemA = "X"
	AvailableItemB = "Y"
	DepletedItem   = "Z"

	SeededLevel = 5
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCheckoutPayload provides stable request data for pact interactions.
func ExampleCheckoutPayload() map[string]any {
	return map[string]any{
		"items": []string{AvailableItemA, AvailableItemB},
	}
}

// ExampleInvoicePayload mirrors a completed checkout's invoice shape.
func ExampleInvoicePayload() map[string]any {
	return map[string]any{
		"orderId":     "order-1",
		"items":       []string{AvailableItemA, AvailableItemB},
		"totalAmount": 200,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
