// Package types carries the command shapes shared between the application
// service, its ports, and the transport adapters.
package types

// LineItemInput is one requested product+quantity pair. Quantity is validated
// at the transport boundary before the coordinator runs.
type LineItemInput struct {
	ProductID int64
	Quantity  int32
}

// PlaceOrderInput is the command accepted by the order placement workflow.
type PlaceOrderInput struct {
	UserID int64
	Items  []LineItemInput
}
