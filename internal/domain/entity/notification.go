package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies what a notification is about.
type NotificationType string

const (
	// NotificationTypeOrderCreated is emitted when a provider places a new order.
	NotificationTypeOrderCreated NotificationType = "order_created"
)

// Notification is a persisted per-tenant inbox entry. The realtime channel is
// best-effort; this row is what clients reconcile against after reconnecting.
type Notification struct {
	ID        uuid.UUID
	EntityID  uuid.UUID // The order (or other entity) this notification refers to.
	TenantID  uuid.UUID // The tenant whose inbox this entry belongs to.
	Type      NotificationType
	Title     string
	Content   string
	IsRead    bool
	CreatedAt time.Time
}
