package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.StockRepository = (*StockRepository)(nil)

// StockRepository keeps stock counters in PostgreSQL using GORM.
type StockRepository struct {
	db *gorm.DB
}

// NewStockRepository wires a PostgreSQL-backed stock table. Caller manages
// the DB lifecycle.
func NewStockRepository(db *gorm.DB) *StockRepository {
	repo := &StockRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&stockRecord{})
	}
	return repo
}

// stockRecord maps one item counter to a relational row.
type stockRecord struct {
	Item      string    `gorm:"primaryKey;column:item;size:255"`
	Quantity  int       `gorm:"column:quantity"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (stockRecord) TableName() string { return "stock_levels" }

// Level reports the available quantity; unknown items are 0.
func (r *StockRepository) Level(ctx context.Context, item domain.LineItem) (int, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var record stockRecord
	if err := r.db.WithContext(ctx).First(&record, "item = ?", string(item)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.Quantity, nil
}

// Decrement subtracts qty atomically, refusing to drive the counter negative.
func (r *StockRepository) Decrement(ctx context.Context, item domain.LineItem, qty int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&stockRecord{}).
		Where("item = ? AND quantity >= ?", string(item), qty).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrInsufficientStock
	}
	return nil
}

// SetLevel seeds or replaces the counter for an item.
func (r *StockRepository) SetLevel(ctx context.Context, item domain.LineItem, qty int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	record := stockRecord{Item: string(item), Quantity: qty, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "item"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   record.Quantity,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

func (r *StockRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres stock repository not configured")
	}
	return nil
}
