package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/goshop/orderflow/internal/domains/orders/application/types"
	ordersdomain "github.com/goshop/orderflow/internal/domains/orders/domain"
	ordersports "github.com/goshop/orderflow/internal/domains/orders/ports"
)

// PlaceOrderActivityName runs the policy-wrapped placement workflow.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
// The service passed here should already carry the breaker decorator so the
// durable path shares the same protective policy as the inline path.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder executes the coordinator and returns the persisted order, which
// may carry FAILED status when the fallback path ran.
func (a *Activities) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "userId", input.UserID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID)
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "status", string(order.Status))
	return order, nil
}
