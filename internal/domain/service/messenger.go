package service

import "context"

// Messenger delivers ad-hoc text messages to an external channel (Telegram).
type Messenger interface {
	SendMessage(ctx context.Context, text string) error
}
