//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
	"github.com/shopflow/checkout/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("checkout_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestStockRepository_LevelAndDecrement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewStockRepository(db)
	ctx := context.Background()

	// Unknown item reads as zero.
	level, err := repo.Level(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, level)

	require.NoError(t, repo.SetLevel(ctx, "X", 3))
	level, err = repo.Level(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, 3, level)

	require.NoError(t, repo.Decrement(ctx, "X", 2))
	level, err = repo.Level(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, 1, level)

	// The counter never goes negative.
	err = repo.Decrement(ctx, "X", 2)
	assert.ErrorIs(t, err, ports.ErrInsufficientStock)
	level, err = repo.Level(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, 1, level)
}

func TestStockRepository_SetLevelUpserts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SetLevel(ctx, "X", 3))
	require.NoError(t, repo.SetLevel(ctx, "X", 7))

	level, err := repo.Level(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, 7, level)
}

func TestOrderRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	record := ports.OrderRecord{
		ID:        "order-1",
		Items:     []domain.LineItem{"X", "Y"},
		Status:    ports.OrderStatusProcessing,
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, record))

	// Upsert to completed.
	record.Status = ports.OrderStatusCompleted
	record.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Save(ctx, record))

	stored, err := repo.GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, ports.OrderStatusCompleted, stored.Status)
	assert.Equal(t, []domain.LineItem{"X", "Y"}, stored.Items)
}

func TestInvoiceRepository_SaveAndGetByOrderID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	_, err := repo.GetByOrderID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	invoice := domain.InvoiceRecord{
		OrderID:     "order-1",
		Items:       []domain.LineItem{"X", "Y"},
		TotalAmount: 200,
	}
	require.NoError(t, repo.Save(ctx, invoice))

	stored, err := repo.GetByOrderID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, invoice, *stored)
}
