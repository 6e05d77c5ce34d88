package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber    string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	ProviderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	TotalAmount    int64     `gorm:"not null"`
	DiscountAmount int64     `gorm:"not null;default:0"`
	FinalAmount    int64     `gorm:"not null"`
	Status         string    `gorm:"type:varchar(20);index;not null"`
	OrderDate      time.Time `gorm:"index;not null"`
	DeliveryDate   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *OrderModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}

// OrderItemModel mirrors the 'order_items' table. Product fields are
// snapshots taken at order time.
type OrderItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductName string    `gorm:"type:varchar(150);not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
	TotalPrice  int64     `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *OrderItemModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}

// OrderCounterModel mirrors the 'order_counters' table: one row per calendar
// day, incremented atomically to hand out order number sequences.
type OrderCounterModel struct {
	Day     string `gorm:"type:varchar(8);primaryKey"`
	Counter int    `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderCounterModel) TableName() string {
	return "order_counters"
}
