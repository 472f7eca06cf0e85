package simulation

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shopflow/checkout/internal/checkout/domain"
)

func TestProbabilisticPaymentPolicy_RateBounds(t *testing.T) {
	ctx := context.Background()
	order, err := domain.NewOrder("order-1", []domain.LineItem{"X"})
	require.NoError(t, err)

	always := NewProbabilisticPaymentPolicy(1)
	for i := 0; i < 50; i++ {
		approved, err := always.Authorize(ctx, order)
		require.NoError(t, err)
		require.True(t, approved)
	}

	never := NewProbabilisticPaymentPolicy(0)
	for i := 0; i < 50; i++ {
		approved, err := never.Authorize(ctx, order)
		require.NoError(t, err)
		require.False(t, approved)
	}
}

func TestProbabilisticPaymentPolicy_ClampsRate(t *testing.T) {
	ctx := context.Background()
	order, err := domain.NewOrder("order-1", []domain.LineItem{"X"})
	require.NoError(t, err)

	clamped := NewProbabilisticPaymentPolicy(7.5)
	approved, err := clamped.Authorize(ctx, order)
	require.NoError(t, err)
	require.True(t, approved)
}

func TestProbabilisticPaymentPolicy_DeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	order, err := domain.NewOrder("order-1", []domain.LineItem{"X"})
	require.NoError(t, err)

	first := NewProbabilisticPaymentPolicy(0.5, WithRandSource(rand.NewSource(42)))
	second := NewProbabilisticPaymentPolicy(0.5, WithRandSource(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		a, err := first.Authorize(ctx, order)
		require.NoError(t, err)
		b, err := second.Authorize(ctx, order)
		require.NoError(t, err)
		require.Equal(t, a, b)
	}
}

func TestStaticPolicies(t *testing.T) {
	ctx := context.Background()
	order, err := domain.NewOrder("order-1", []domain.LineItem{"X"})
	require.NoError(t, err)

	approved, err := AlwaysApprove.Authorize(ctx, order)
	require.NoError(t, err)
	require.True(t, approved)

	approved, err = AlwaysDecline.Authorize(ctx, order)
	require.NoError(t, err)
	require.False(t, approved)
}
