package ports

import (
	"context"
	"errors"
)

var (
	// ErrProductNotFound means the inventory system reports no such product.
	ErrProductNotFound = errors.New("product not found in inventory")
	// ErrStockRejected means the inventory system processed a stock reduction
	// and declined it, typically because stock ran out between validation and
	// commit.
	ErrStockRejected = errors.New("stock reduction rejected by inventory")
	// ErrInventoryUnavailable means the call itself could not be completed:
	// timeout, connection failure, or an unexpected response.
	ErrInventoryUnavailable = errors.New("inventory service unavailable")
)

// Product is the inventory system's view of a product, read-only from this
// side except for the ReduceStock side effect.
type Product struct {
	ID    int64
	Price float64
	Stock int32
}

// InventoryClient calls out to the inventory service. Implementations do not
// retry; protective behavior is layered on by the caller.
type InventoryClient interface {
	FetchProduct(ctx context.Context, id int64) (*Product, error)
	ReduceStock(ctx context.Context, id int64, qty int32) error
}
