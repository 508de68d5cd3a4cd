package ports

import (
	"context"
	"errors"

	"github.com/goshop/orderflow/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository is the durable order store. Save assigns the order ID; orders
// are write-once, so there is no update or delete surface.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
