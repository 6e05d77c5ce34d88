package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Names are unique system-wide.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a sellable item inside a category. Prices are integer minor
// currency units; NewPrice, when set, is the discounted price that wins over
// Price at order time.
type Product struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Price      int64
	NewPrice   *int64
	ImageURL   string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectivePrice returns the price an order line pays right now.
func (p *Product) EffectivePrice() int64 {
	if p.NewPrice != nil {
		return *p.NewPrice
	}

	return p.Price
}
