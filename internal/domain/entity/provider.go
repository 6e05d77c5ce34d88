package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provider is the business profile of a supplier tenant. It is created
// together with its Account at registration and never hard-deleted;
// admins lock or verify the paired account instead.
type Provider struct {
	ID           uuid.UUID
	TenantID     uuid.UUID // Matches the Account.TenantID of the owning login.
	ProviderName string
	Telephone    string
	Mobile       string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
