// Package telegram implements the Messenger domain service over the Telegram Bot API.
package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"orderdesk/config"
	"orderdesk/internal/domain/service"
)

const botAPIBaseURL = "https://api.telegram.org"

// botClient delivers text messages to the configured chat. When the feature
// is disabled in config, sends become no-ops.
type botClient struct {
	httpClient *resty.Client
	cfg        *config.TelegramConfig
	logger     *slog.Logger
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewBotClient is the constructor for botClient.
func NewBotClient(cfg *config.Config, logger *slog.Logger) service.Messenger {
	client := resty.New().
		SetBaseURL(botAPIBaseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json")

	return &botClient{
		httpClient: client,
		cfg:        cfg.Telegram,
		logger:     logger,
	}
}

// SendMessage posts a plain text message to the configured chat.
func (c *botClient) SendMessage(ctx context.Context, text string) error {
	if c.cfg == nil || !c.cfg.Enabled {
		return nil
	}

	var result sendMessageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{ChatID: c.cfg.ChatID, Text: text}).
		SetResult(&result).
		SetError(&result).
		Post("/bot" + c.cfg.BotToken + "/sendMessage")
	if err != nil {
		return errors.Wrap(err, "failed to call telegram api")
	}

	if resp.IsError() || !result.OK {
		c.logger.Warn("telegram send rejected",
			slog.Int("status", resp.StatusCode()),
			slog.String("description", result.Description),
		)

		return errors.Errorf("telegram api error: %s", result.Description)
	}

	return nil
}
