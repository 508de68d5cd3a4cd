package application

import (
	"context"
	"time"

	"github.com/goshop/orderflow/internal/domains/orders/application/types"
	"github.com/goshop/orderflow/internal/domains/orders/domain"
	"github.com/goshop/orderflow/internal/domains/orders/ports"
)

// Service coordinates order placement against the inventory service and the
// order store. Placement is a two-step saga without compensation: the order
// is persisted as PLACED before stock is committed, and lines already
// committed are not rolled back when a later line fails.
type Service struct {
	repo      ports.Repository
	inventory ports.InventoryClient
	now       func() time.Time
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, inventory ports.InventoryClient) *Service {
	return &Service{repo: repo, inventory: inventory, now: time.Now}
}

// PlaceOrder validates every requested line against the inventory service,
// persists the order as PLACED, then commits the stock reductions line by
// line in request order. Any failure aborts the operation; callers layering a
// fallback policy on top translate the error into a FAILED order.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	lines := make([]domain.OrderLine, 0, len(input.Items))
	for _, item := range input.Items {
		product, err := s.inventory.FetchProduct(ctx, item.ProductID)
		if err != nil {
			return nil, mapInventoryError(err, item.ProductID)
		}
		if product.Stock < item.Quantity {
			return nil, insufficientStock(item.ProductID)
		}
		lines = append(lines, domain.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	order, err := domain.NewPlacedOrder(input.UserID, lines, s.now())
	if err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}

	// Commit phase. No compensation is issued for lines that already
	// committed when a later line fails.
	for _, item := range input.Items {
		if err := s.inventory.ReduceStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, mapCommitError(err, item.ProductID)
		}
	}
	return saved, nil
}

// GetOrderByID loads a single order.
func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns all orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
