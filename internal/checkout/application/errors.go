package application

import (
	"errors"
	"fmt"

	"github.com/shopflow/checkout/internal/checkout/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid checkout input")
	// ErrEmptyCart signals checkout was requested with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyItem) || errors.Is(err, domain.ErrEmptyOrder) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
