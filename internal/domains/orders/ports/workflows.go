package ports

import (
	"context"

	"github.com/goshop/orderflow/internal/domains/orders/application/types"
	"github.com/goshop/orderflow/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by the
// orders bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
}
