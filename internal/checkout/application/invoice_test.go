package application

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopflow/checkout/internal/checkout/domain"
)

func TestInvoiceGenerator_DefaultAmount(t *testing.T) {
	gen := NewInvoiceGenerator(nil)
	order, err := domain.NewOrder("order-1", []domain.LineItem{"X", "Y"})
	require.NoError(t, err)

	invoice := gen.Generate(order)
	require.Equal(t, domain.OrderID("order-1"), invoice.OrderID)
	require.Equal(t, []domain.LineItem{"X", "Y"}, invoice.Items)
	require.Equal(t, 2*DefaultItemAmount, invoice.TotalAmount)
}

func TestInvoiceGenerator_PriceTable(t *testing.T) {
	gen := NewInvoiceGenerator(map[domain.LineItem]int64{"X": 250})
	order, err := domain.NewOrder("order-1", []domain.LineItem{"X", "Y"})
	require.NoError(t, err)

	invoice := gen.Generate(order)
	require.Equal(t, int64(250)+DefaultItemAmount, invoice.TotalAmount)
}

func TestInvoiceGenerator_IsPure(t *testing.T) {
	gen := NewInvoiceGenerator(nil)
	order, err := domain.NewOrder("order-1", []domain.LineItem{"X"})
	require.NoError(t, err)

	first := gen.Generate(order)
	second := gen.Generate(order)
	require.Equal(t, first, second)
}
