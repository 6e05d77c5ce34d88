// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"orderdesk/internal/delivery/http/middleware"
	"orderdesk/internal/delivery/http/response"
	"orderdesk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account and session handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, logger: logger}
}

type registerRequest struct {
	ProviderName string `json:"providerName" validate:"required"`
	Mobile       string `json:"mobile" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Telephone    string `json:"telephone"`
	Address      string `json:"address"`
	Password     string `json:"password" validate:"required"`
}

type registerResponse struct {
	AccountID    string `json:"accountId"`
	TenantID     string `json:"tenantId"`
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
}

// Register handles the provider registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterProviderInput{
		ProviderName: req.ProviderName,
		Mobile:       req.Mobile,
		Email:        req.Email,
		Telephone:    req.Telephone,
		Address:      req.Address,
		Password:     req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Never echo the password hash back.
	return response.Success(c, http.StatusCreated, registerResponse{
		AccountID:    output.Account.ID.String(),
		TenantID:     output.Account.TenantID.String(),
		ProviderID:   output.Provider.ID.String(),
		ProviderName: output.Provider.ProviderName,
	}, "Provider registered successfully")
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role"`
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		DisplayName:  output.Account.DisplayName,
		Role:         output.Account.Role.String(),
	}, "Login successful")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh handles the token refresh request.
func (h *AccountHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Refresh(c.Request().Context(), usecase.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Token refreshed")
}

// Logout deletes the presented session.
func (h *AccountHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}

	if err := h.uc.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePassword handles the password change request of the authenticated account.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.uc.ChangePassword(c.Request().Context(), usecase.ChangePasswordInput{
		AccountID:   accountID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed")
}

type forgotPasswordRequest struct {
	Login string `json:"login" validate:"required"`
}

// ForgotPassword issues a reset token and mails the link. Always answers 200.
func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), req.Login); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "If the account exists, a reset mail was sent")
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ResetPassword consumes a reset token and sets the new password.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.uc.ResetPassword(c.Request().Context(), usecase.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset")
}

// Me returns the authenticated account's profile.
func (h *AccountHandler) Me(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	output, err := h.uc.CurrentUser(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
