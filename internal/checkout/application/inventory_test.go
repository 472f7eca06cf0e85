package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	checkoutmemory "github.com/shopflow/checkout/internal/checkout/adapters/memory"
	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

func TestInventoryTracker_RecordsNegativeDeltas(t *testing.T) {
	ctx := context.Background()
	audit := checkoutmemory.NewAuditLog()
	tracker := NewInventoryTracker(audit)
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	tracker.WithClock(func() time.Time { return now })

	order, err := domain.NewOrder("order-1", []domain.LineItem{"X", "X", "Y"})
	require.NoError(t, err)
	require.NoError(t, tracker.Update(ctx, order))

	entries, err := audit.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byItem := map[domain.LineItem]ports.AuditEntry{}
	for _, entry := range entries {
		byItem[entry.Item] = entry
	}
	require.Equal(t, -2, byItem["X"].Delta)
	require.Equal(t, -1, byItem["Y"].Delta)
	require.Equal(t, now, byItem["X"].RecordedAt)
	require.Equal(t, domain.OrderID("order-1"), byItem["Y"].OrderID)
}
