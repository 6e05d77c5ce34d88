package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the operations for notification persistence.
type NotificationRepository interface {
	// Create persists a new notification row.
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByTenant returns one page of a tenant's notifications, newest first,
	// plus the total match count.
	ListByTenant(ctx context.Context, tenantID uuid.UUID, query NotificationQuery) ([]*entity.Notification, int64, error)

	// CountUnread returns the number of unread notifications for a tenant.
	CountUnread(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// MarkRead marks a single notification as read. The tenant ID guards
	// against cross-tenant access.
	MarkRead(ctx context.Context, tenantID, id uuid.UUID) error

	// MarkAllRead marks every unread notification of the tenant as read and
	// leaves other tenants untouched.
	MarkAllRead(ctx context.Context, tenantID uuid.UUID) error
}
