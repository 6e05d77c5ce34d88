package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderModel mirrors the 'providers' table.
type ProviderModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ProviderName string    `gorm:"type:varchar(100);not null"`
	Telephone    string    `gorm:"type:varchar(20)"`
	Mobile       string    `gorm:"type:varchar(20);not null"`
	Address      string    `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Orders []OrderModel `gorm:"foreignKey:ProviderID"`
}

// TableName explicitly sets the table name for GORM.
func (ProviderModel) TableName() string {
	return "providers"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *ProviderModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}
