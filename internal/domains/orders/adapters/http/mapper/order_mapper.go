package mapper

import (
	"time"

	"github.com/goshop/orderflow/internal/domains/orders/application/types"
	ordersdomain "github.com/goshop/orderflow/internal/domains/orders/domain"
)

// PlaceOrderRequest is the transport shape accepted by POST /orders.
// Quantity and identifier bounds are enforced here, before the coordinator
// runs.
type PlaceOrderRequest struct {
	UserID int64            `json:"userId" binding:"required,gt=0"`
	Items  []PlaceOrderItem `json:"items" binding:"dive"`
}

// PlaceOrderItem is one requested line.
type PlaceOrderItem struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int32 `json:"quantity" binding:"required,gt=0"`
}

// OrderLine is the transport shape of a resolved line.
type OrderLine struct {
	ProductID int64   `json:"productId"`
	Quantity  int32   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is the transport representation of a persisted order. Callers must
// inspect Status: business failures arrive as a FAILED order, not an error
// response.
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Lines       []OrderLine `json:"lines"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ToPlaceOrderInput converts the transport request into the application command.
func ToPlaceOrderInput(req PlaceOrderRequest) types.PlaceOrderInput {
	items := make([]types.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, types.LineItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return types.PlaceOrderInput{UserID: req.UserID, Items: items}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	lines := make([]OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLine{ProductID: line.ProductID, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	return Order{
		ID:          order.ID,
		UserID:      order.UserID,
		Lines:       lines,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
}

// FromDomainOrders converts a list of domain orders.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
