package domain

import (
	"errors"
	"time"
)

// Status enumerates the terminal outcomes of order placement. An order is
// assigned its status once, at creation, and never transitions afterwards.
type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrInvalidUserID    = errors.New("user id must be greater than zero")
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidStatus    = errors.New("order status is invalid")
)

// OrderLine is one product+quantity pair with the unit price snapshot taken
// at validation time. The price is never re-read after validation; failed
// orders carry their lines unpriced.
type OrderLine struct {
	ProductID int64
	Quantity  int32
	UnitPrice float64
}

// Order models the purchase order aggregate. It is a write-once record: the
// repository assigns the ID at persist time and no field changes afterwards.
type Order struct {
	ID          int64
	UserID      int64
	Lines       []OrderLine
	TotalAmount float64
	Status      Status
	CreatedAt   time.Time
}

// NewPlacedOrder builds a PLACED order from priced lines, computing the total
// as the sum of unit price times quantity. The total is computed here, once,
// and never recomputed.
func NewPlacedOrder(userID int64, lines []OrderLine, createdAt time.Time) (*Order, error) {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	order := &Order{
		UserID:      userID,
		Lines:       lines,
		TotalAmount: total,
		Status:      StatusPlaced,
		CreatedAt:   createdAt,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// NewFailedOrder builds the fallback order for a placement that could not be
// completed: zero total and the original request lines without a price
// snapshot, since the fallback path does not re-validate.
func NewFailedOrder(userID int64, lines []OrderLine, createdAt time.Time) (*Order, error) {
	unpriced := make([]OrderLine, len(lines))
	for i, line := range lines {
		unpriced[i] = OrderLine{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	order := &Order{
		UserID:    userID,
		Lines:     unpriced,
		Status:    StatusFailed,
		CreatedAt: createdAt,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.UserID <= 0 {
		return ErrInvalidUserID
	}
	for _, line := range o.Lines {
		if line.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPlaced, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}
