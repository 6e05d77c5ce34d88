package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusNew is the initial state of every order.
	OrderStatusNew OrderStatus = "new"
	// OrderStatusCompleted marks a delivered, settled order.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCanceled marks an order that was withdrawn before completion.
	OrderStatusCanceled OrderStatus = "canceled"
)

// orderTransitions is the allowed-transition table. Completed and canceled
// are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusNew:       {OrderStatusCompleted, OrderStatusCanceled},
	OrderStatusCompleted: {},
	OrderStatusCanceled:  {},
}

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Order is the aggregate root of a purchase. Amounts are integer minor
// currency units and satisfy FinalAmount = TotalAmount - DiscountAmount >= 0.
type Order struct {
	ID             uuid.UUID
	OrderNumber    string // yyyyMMdd date prefix + zero-padded daily sequence, unique.
	ProviderID     uuid.UUID
	TotalAmount    int64
	DiscountAmount int64
	FinalAmount    int64
	Status         OrderStatus
	OrderDate      time.Time
	DeliveryDate   *time.Time
	Items          []*OrderItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem is a denormalized snapshot of a product at order time, so
// historical orders are unaffected by later product edits.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   int64
	TotalPrice  int64
}
