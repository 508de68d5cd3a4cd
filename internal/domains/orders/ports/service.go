package ports

import (
	"context"

	"github.com/goshop/orderflow/internal/domains/orders/application/types"
	"github.com/goshop/orderflow/internal/domains/orders/domain"
)

// Service exposes the orders bounded context use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}
