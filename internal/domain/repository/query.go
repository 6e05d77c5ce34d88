package repository

import (
	"time"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SortDirection is either "asc" or "desc"; anything else falls back to the
// repository's default ordering.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Pagination carries offset-based paging parameters. Zero values fall back to
// page 1 with the default page size.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize clamps the pagination parameters into their legal range.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}

	return p
}

// Limit returns the LIMIT value for the normalized pagination.
func (p Pagination) Limit() int {
	return p.Normalize().PageSize
}

// Offset returns the OFFSET value for the normalized pagination.
func (p Pagination) Offset() int {
	n := p.Normalize()

	return (n.Page - 1) * n.PageSize
}

// ProviderQuery filters and sorts provider listings.
type ProviderQuery struct {
	Search  string // Case-insensitive match on provider name or mobile.
	SortBy  string // One of: name, createdAt. Unknown values use the default.
	SortDir SortDirection
	Pagination
}

// CategoryQuery filters and sorts category listings.
type CategoryQuery struct {
	Search  string
	SortBy  string // One of: name, createdAt.
	SortDir SortDirection
	Pagination
}

// ProductQuery filters and sorts product listings.
type ProductQuery struct {
	Search     string
	CategoryID *uuid.UUID
	IsActive   *bool
	PriceMin   *int64
	PriceMax   *int64
	SortBy     string // One of: name, price, createdAt.
	SortDir    SortDirection
	Pagination
}

// OrderQuery filters and sorts order listings.
type OrderQuery struct {
	Search     string // Match on order number.
	Status     *entity.OrderStatus
	ProviderID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string // One of: orderDate, orderNumber, finalAmount, status.
	SortDir    SortDirection
	Pagination
}

// NotificationQuery pages through a tenant's notification inbox.
type NotificationQuery struct {
	UnreadOnly bool
	Pagination
}
