package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOrder_RejectsEmpty(t *testing.T) {
	_, err := NewOrder("order-1", nil)
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestNewOrder_SnapshotIsImmutable(t *testing.T) {
	source := []LineItem{"X", "Y"}
	order, err := NewOrder("order-1", source)
	require.NoError(t, err)

	// Mutating the source after capture does not reach the order.
	source[0] = "tampered"
	require.Equal(t, []LineItem{"X", "Y"}, order.Items())

	// Mutating a returned copy does not reach the order either.
	items := order.Items()
	items[1] = "tampered"
	require.Equal(t, []LineItem{"X", "Y"}, order.Items())
}

func TestOrder_Quantities(t *testing.T) {
	order, err := NewOrder("order-1", []LineItem{"X", "X", "Y"})
	require.NoError(t, err)
	require.Equal(t, map[LineItem]int{"X": 2, "Y": 1}, order.Quantities())
	require.Equal(t, 3, order.Len())
}
