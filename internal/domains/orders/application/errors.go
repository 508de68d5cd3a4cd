package application

import (
	"errors"
	"fmt"

	"github.com/goshop/orderflow/internal/domains/orders/ports"
)

var (
	// ErrInvalidProduct signals a requested product id is unknown to the
	// inventory service.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrInsufficientStock signals the validation-time stock read could not
	// cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrCommitRejected signals the inventory service declined a stock
	// reduction at commit time.
	ErrCommitRejected = errors.New("stock commit rejected")
	// ErrInventoryUnavailable signals the inventory service could not be
	// reached at all.
	ErrInventoryUnavailable = errors.New("inventory unavailable")
)

func mapInventoryError(err error, productID int64) error {
	switch {
	case errors.Is(err, ports.ErrProductNotFound):
		return fmt.Errorf("%w: product %d", ErrInvalidProduct, productID)
	case errors.Is(err, ports.ErrInventoryUnavailable):
		return fmt.Errorf("%w: fetching product %d: %w", ErrInventoryUnavailable, productID, err)
	default:
		return err
	}
}

func mapCommitError(err error, productID int64) error {
	switch {
	case errors.Is(err, ports.ErrStockRejected):
		return fmt.Errorf("%w: product %d", ErrCommitRejected, productID)
	case errors.Is(err, ports.ErrInventoryUnavailable):
		return fmt.Errorf("%w: reducing stock for product %d: %w", ErrInventoryUnavailable, productID, err)
	default:
		return err
	}
}

func insufficientStock(productID int64) error {
	return fmt.Errorf("%w: product %d", ErrInsufficientStock, productID)
}

// IsPlacementFailure reports whether err belongs to the placement failure
// taxonomy that the fallback policy absorbs into a FAILED order. Anything
// outside it is an unclassified internal fault and propagates.
func IsPlacementFailure(err error) bool {
	return errors.Is(err, ErrInvalidProduct) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrCommitRejected) ||
		errors.Is(err, ErrInventoryUnavailable)
}
