package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationModel mirrors the 'notifications' table.
type NotificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityID  uuid.UUID `gorm:"type:uuid;index;not null"`
	TenantID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Type      string    `gorm:"type:varchar(40);not null"`
	Title     string    `gorm:"type:varchar(150);not null"`
	Content   string    `gorm:"type:text"`
	IsRead    bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *NotificationModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}
