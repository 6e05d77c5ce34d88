package usecase

import (
	"context"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterProviderInput defines the data required to register a new provider.
type RegisterProviderInput struct {
	ProviderName string
	Mobile       string
	Email        string
	Telephone    string
	Address      string
	Password     string
}

// LoginInput defines the data required for an account to log in. Login
// accepts either the display name or the mobile number.
type LoginInput struct {
	Login    string
	Password string
}

// RefreshInput carries the raw refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	AccountID   uuid.UUID
	OldPassword string
	NewPassword string
}

// ResetPasswordInput carries the one-time reset token and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account and provider profile.
type RegisterOutput struct {
	Account  *entity.Account
	Provider *entity.Provider
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	Account      *entity.Account
}

// RefreshOutput returns the new access token.
type RefreshOutput struct {
	AccessToken string
}

// CurrentUserOutput describes the authenticated account.
type CurrentUserOutput struct {
	AccountID   uuid.UUID `json:"accountId"`
	TenantID    uuid.UUID `json:"tenantId"`
	DisplayName string    `json:"displayName"`
	Mobile      string    `json:"mobile"`
	Role        string    `json:"role"`
	IsVerified  bool      `json:"isVerified"`
}

// AccountUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterProviderInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, input RefreshInput) (*RefreshOutput, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, accountID uuid.UUID) error
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
	ForgotPassword(ctx context.Context, mobileOrName string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	CurrentUser(ctx context.Context, accountID uuid.UUID) (*CurrentUserOutput, error)
}
