package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/shopflow/checkout/internal/checkout/domain"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                string
	PostgresDSN         string
	TemporalAddress     string
	TemporalNamespace   string
	TemporalDisabled    bool
	PaymentApprovalRate float64
	InitialStock        map[domain.LineItem]int
	ItemPrices          map[domain.LineItem]int64
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                envDefault("PORT", "8080"),
		PostgresDSN:         strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:     envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:   envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:    isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		PaymentApprovalRate: 1,
	}
	if raw := strings.TrimSpace(os.Getenv("PAYMENT_APPROVAL_RATE")); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 || rate > 1 {
			return Config{}, fmt.Errorf("PAYMENT_APPROVAL_RATE must be a number between 0 and 1")
		}
		cfg.PaymentApprovalRate = rate
	}
	stock, err := parseItemCounts(os.Getenv("INITIAL_STOCK"))
	if err != nil {
		return Config{}, fmt.Errorf("INITIAL_STOCK: %w", err)
	}
	cfg.InitialStock = stock
	prices, err := parseItemPrices(os.Getenv("ITEM_PRICES"))
	if err != nil {
		return Config{}, fmt.Errorf("ITEM_PRICES: %w", err)
	}
	cfg.ItemPrices = prices
	return cfg, nil
}

// parseItemCounts reads "sku=qty,sku=qty" pairs.
func parseItemCounts(raw string) (map[domain.LineItem]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	counts := make(map[domain.LineItem]int)
	for _, pair := range strings.Split(raw, ",") {
		item, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		qty, err := strconv.Atoi(value)
		if err != nil || qty < 0 {
			return nil, fmt.Errorf("quantity for %q must be a non-negative integer", item)
		}
		counts[domain.LineItem(item)] = qty
	}
	return counts, nil
}

// parseItemPrices reads "sku=amount,sku=amount" pairs.
func parseItemPrices(raw string) (map[domain.LineItem]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	prices := make(map[domain.LineItem]int64)
	for _, pair := range strings.Split(raw, ",") {
		item, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		amount, err := strconv.ParseInt(value, 10, 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("price for %q must be a non-negative integer", item)
		}
		prices[domain.LineItem(item)] = amount
	}
	return prices, nil
}

func splitPair(pair string) (string, string, error) {
	item, value, found := strings.Cut(strings.TrimSpace(pair), "=")
	item = strings.TrimSpace(item)
	value = strings.TrimSpace(value)
	if !found || item == "" || value == "" {
		return "", "", fmt.Errorf("entry %q must use the item=value form", pair)
	}
	return item, value, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
