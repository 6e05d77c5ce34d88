package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryModel mirrors the 'categories' table. The unique index on Name
// backs up the service-level uniqueness check.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []ProductModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *CategoryModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}

// ProductModel mirrors the 'products' table. Name is unique within a category.
type ProductModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:ux_products_category_name"`
	Name       string    `gorm:"type:varchar(150);not null;uniqueIndex:ux_products_category_name"`
	Price      int64     `gorm:"not null"`
	NewPrice   *int64
	ImageURL   string `gorm:"type:varchar(255)"`
	IsActive   bool   `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *ProductModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}
