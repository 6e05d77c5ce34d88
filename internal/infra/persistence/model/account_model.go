// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills in a client-side UUID when the caller did not assign one,
// keeping inserts portable across database backends.
func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}

	return id
}

// AccountModel mirrors the 'accounts' table.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	DisplayName  string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Mobile       string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(20);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsVerified   bool      `gorm:"not null;default:false"`
	LockedUntil  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	RefreshTokens  []RefreshTokenModel  `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	PasswordResets []PasswordResetModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *AccountModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}

// RefreshTokenModel mirrors the 'refresh_tokens' table.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	TokenHash string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *RefreshTokenModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}

// PasswordResetModel mirrors the 'password_resets' table.
type PasswordResetModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;index;not null"`
	TokenHash string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PasswordResetModel) TableName() string {
	return "password_resets"
}

// BeforeCreate assigns a client-side UUID when none is set.
func (m *PasswordResetModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = newID(m.ID)

	return nil
}
