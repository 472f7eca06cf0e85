// Package migrations applies the relational schema for the checkout context.
package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the checkout context. Intended to replace
// adapter-level automigrate in deployments that manage schema centrally.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&stockRecord{},
		&orderRecord{},
		&invoiceRecord{},
	)
}

// Stock schema mirrors the checkout Postgres stock adapter.
type stockRecord struct {
	Item      string    `gorm:"primaryKey;column:item;size:255"`
	Quantity  int       `gorm:"column:quantity"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (stockRecord) TableName() string { return "stock_levels" }

// Order schema mirrors the checkout Postgres order adapter.
type orderRecord struct {
	ID        string         `gorm:"primaryKey;column:id;size:64"`
	Items     pq.StringArray `gorm:"column:items;type:text[]"`
	Status    string         `gorm:"column:status;type:varchar(32);index"`
	UpdatedAt time.Time      `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "checkout_orders" }

// Invoice schema mirrors the checkout Postgres invoice adapter.
type invoiceRecord struct {
	OrderID     string         `gorm:"primaryKey;column:order_id;size:64"`
	Items       pq.StringArray `gorm:"column:items;type:text[]"`
	TotalAmount int64          `gorm:"column:total_amount"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
}

func (invoiceRecord) TableName() string { return "invoices" }
