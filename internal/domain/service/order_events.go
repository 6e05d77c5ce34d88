package service

import (
	"context"

	"github.com/google/uuid"
)

// OrderCreatedEvent is the payload pushed to connected admin sessions when a
// provider places a new order.
type OrderCreatedEvent struct {
	OrderID uuid.UUID `json:"orderId"`
	Msg     string    `json:"msg"`
}

// OrderEventPublisher fans order events out to a tenant's live connections.
// Publishing is best-effort: with no connected session the event is dropped
// and clients reconcile through the persisted notification inbox.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, tenantID uuid.UUID, event *OrderCreatedEvent)
}
