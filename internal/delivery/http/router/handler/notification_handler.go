package handler

import (
	"net/http"

	"orderdesk/internal/delivery/http/middleware"
	"orderdesk/internal/delivery/http/response"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler serves the per-tenant notification inbox.
type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List returns a page of the caller's notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	input := usecase.NotificationListInput{
		UnreadOnly: c.QueryParam("unreadOnly") == "true",
		Page:       queryInt(c, "page"),
		PageSize:   queryInt(c, "pageSize"),
	}

	output, err := h.uc.List(c.Request().Context(), tenantID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// UnreadCount returns the caller's unread notification count.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	count, err := h.uc.UnreadCount(c.Request().Context(), tenantID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"count": count}, "")
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid notification id")
	}

	if err := h.uc.MarkRead(c.Request().Context(), tenantID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "已標示為已讀")
}

// MarkAllRead marks every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	if err := h.uc.MarkAllRead(c.Request().Context(), tenantID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "已全部標示為已讀")
}
