package application

import (
	"context"
	"fmt"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.StockService = (*StockService)(nil)

// StockService decides availability and mutates stock counters through the
// stock repository. It holds no workflow state of its own.
type StockService struct {
	repo ports.StockRepository
}

// NewStockService wires the stock service with its repository.
func NewStockService(repo ports.StockRepository) *StockService {
	return &StockService{repo: repo}
}

// Check is a deterministic lookup against current stock levels. It carries
// no side effect: a negative result leaves every counter untouched.
func (s *StockService) Check(ctx context.Context, order *domain.Order) (domain.StockCheckResult, error) {
	for item, qty := range order.Quantities() {
		level, err := s.repo.Level(ctx, item)
		if err != nil {
			return domain.StockCheckResult{}, fmt.Errorf("stock level for %q: %w", item, err)
		}
		if level < qty {
			return domain.StockUnavailable(), nil
		}
	}
	return domain.StockAvailable(), nil
}

// Reduce decrements the counter for each line item on the order.
func (s *StockService) Reduce(ctx context.Context, order *domain.Order) error {
	for item, qty := range order.Quantities() {
		if err := s.repo.Decrement(ctx, item, qty); err != nil {
			return fmt.Errorf("reduce stock for %q: %w", item, err)
		}
	}
	return nil
}
