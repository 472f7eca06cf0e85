package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

func TestStockRepository_DecrementGuardsNegative(t *testing.T) {
	ctx := context.Background()
	repo := NewStockRepository()
	repo.Seed(map[domain.LineItem]int{"X": 1})

	require.NoError(t, repo.Decrement(ctx, "X", 1))
	require.ErrorIs(t, repo.Decrement(ctx, "X", 1), ports.ErrInsufficientStock)

	level, err := repo.Level(ctx, "X")
	require.NoError(t, err)
	require.Equal(t, 0, level)
}

func TestStockRepository_UnknownItemIsZero(t *testing.T) {
	repo := NewStockRepository()
	level, err := repo.Level(context.Background(), "unknown")
	require.NoError(t, err)
	require.Equal(t, 0, level)
}

func TestOrderRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	_, err := repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)

	record := ports.OrderRecord{
		ID:        "order-1",
		Items:     []domain.LineItem{"X"},
		Status:    ports.OrderStatusProcessing,
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Save(ctx, record))

	record.Status = ports.OrderStatusCompleted
	require.NoError(t, repo.Save(ctx, record))

	stored, err := repo.GetByID(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, ports.OrderStatusCompleted, stored.Status)
	require.Equal(t, []domain.LineItem{"X"}, stored.Items)
}

func TestInvoiceRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewInvoiceRepository()

	_, err := repo.GetByOrderID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)

	invoice := domain.InvoiceRecord{OrderID: "order-1", Items: []domain.LineItem{"X", "Y"}, TotalAmount: 200}
	require.NoError(t, repo.Save(ctx, invoice))

	stored, err := repo.GetByOrderID(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, invoice, *stored)
}

func TestAuditLog_PreservesArrivalOrder(t *testing.T) {
	ctx := context.Background()
	log := NewAuditLog()
	require.NoError(t, log.Record(ctx, ports.AuditEntry{OrderID: "order-1", Item: "X", Delta: -1}))
	require.NoError(t, log.Record(ctx, ports.AuditEntry{OrderID: "order-1", Item: "Y", Delta: -2}))

	entries, err := log.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, domain.LineItem("X"), entries[0].Item)
	require.Equal(t, domain.LineItem("Y"), entries[1].Item)
}
