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

var _ ports.InvoiceRepository = (*InvoiceRepository)(nil)

// InvoiceRepository persists invoices in PostgreSQL using GORM.
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository wires a PostgreSQL-backed invoice store. Caller
// manages the DB lifecycle.
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	repo := &InvoiceRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&invoiceRecord{})
	}
	return repo
}

// invoiceRecord maps an invoice to a relational row.
type invoiceRecord struct {
	OrderID     string         `gorm:"primaryKey;column:order_id;size:64"`
	Items       pq.StringArray `gorm:"column:items;type:text[]"`
	TotalAmount int64          `gorm:"column:total_amount"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
}

func (invoiceRecord) TableName() string { return "invoices" }

// Save stores the invoice keyed by its order.
func (r *InvoiceRepository) Save(ctx context.Context, invoice domain.InvoiceRecord) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	items := make(pq.StringArray, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, string(item))
	}
	row := invoiceRecord{
		OrderID:     string(invoice.OrderID),
		Items:       items,
		TotalAmount: invoice.TotalAmount,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"items":        row.Items,
				"total_amount": row.TotalAmount,
			}),
		}).Create(&row).Error
}

// GetByOrderID fetches the invoice bound to the given order.
func (r *InvoiceRepository) GetByOrderID(ctx context.Context, id domain.OrderID) (*domain.InvoiceRecord, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var row invoiceRecord
	if err := r.db.WithContext(ctx).First(&row, "order_id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	items := make([]domain.LineItem, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, domain.LineItem(item))
	}
	return &domain.InvoiceRecord{
		OrderID:     domain.OrderID(row.OrderID),
		Items:       items,
		TotalAmount: row.TotalAmount,
	}, nil
}

func (r *InvoiceRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres invoice repository not configured")
	}
	return nil
}
