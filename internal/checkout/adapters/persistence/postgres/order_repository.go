package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository persists order processing records in PostgreSQL using GORM.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository wires a PostgreSQL-backed order store. Caller manages
// the DB lifecycle.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	repo := &OrderRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps an order processing record to a relational row.
type orderRecord struct {
	ID        string         `gorm:"primaryKey;column:id;size:64"`
	Items     pq.StringArray `gorm:"column:items;type:text[]"`
	Status    string         `gorm:"column:status;type:varchar(32);index"`
	UpdatedAt time.Time      `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "checkout_orders" }

// Save inserts or updates the order record.
func (r *OrderRepository) Save(ctx context.Context, record ports.OrderRecord) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	row := toOrderRow(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"items":      row.Items,
				"status":     row.Status,
				"updated_at": row.UpdatedAt,
			}),
		}).Create(&row).Error
}

// GetByID fetches an order record by identifier.
func (r *OrderRepository) GetByID(ctx context.Context, id domain.OrderID) (*ports.OrderRecord, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row orderRecord
	if err := r.db.WithContext(ctx).First(&row, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return row.toPort(), nil
}

func (r *OrderRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toOrderRow(record ports.OrderRecord) orderRecord {
	items := make(pq.StringArray, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, string(item))
	}
	return orderRecord{
		ID:        string(record.ID),
		Items:     items,
		Status:    string(record.Status),
		UpdatedAt: record.UpdatedAt,
	}
}

func (r orderRecord) toPort() *ports.OrderRecord {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.LineItem(item))
	}
	return &ports.OrderRecord{
		ID:        domain.OrderID(r.ID),
		Items:     items,
		Status:    ports.OrderStatus(r.Status),
		UpdatedAt: r.UpdatedAt,
	}
}
