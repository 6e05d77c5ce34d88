package handler

import (
	"net/http"

	"orderdesk/internal/delivery/http/response"
	"orderdesk/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type sendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// TelegramHandler relays ad-hoc operator messages to the Telegram channel.
type TelegramHandler struct {
	messenger service.Messenger
}

// NewTelegramHandler is the constructor for TelegramHandler, injected by Fx.
func NewTelegramHandler(messenger service.Messenger) *TelegramHandler {
	return &TelegramHandler{messenger: messenger}
}

// Send pushes a free-form text message to the configured chat.
func (h *TelegramHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Message is required")
	}

	if err := h.messenger.SendMessage(c.Request().Context(), req.Message); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "訊息已送出")
}
