// Package notify reaches the gym owner and members outside the backend:
// owner alerts and documents over Telegram, member texts over SMS.
package notify

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("notify: channel not configured")

type Notifier interface {
	Notify(ctx context.Context, text string) error
	SendDocument(ctx context.Context, name string, data []byte, caption string) error
}

// Nop drops everything. Used when no owner chat is configured.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }

func (Nop) SendDocument(context.Context, string, []byte, string) error { return ErrNotConfigured }

type SMS interface {
	SendSMS(ctx context.Context, to, body string) error
}
