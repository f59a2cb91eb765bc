package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts into the single owner chat.
type Telegram struct {
	api    sender
	chatID int64
	log    *slog.Logger
}

// NewTelegram shares api with the owner bot, see internal/bot.
func NewTelegram(api *tgbotapi.BotAPI, chatID int64, log *slog.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, log: log}
}

func (t *Telegram) send(ctx context.Context, msg tgbotapi.Chattable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.api.Send(msg); err != nil {
		t.log.Error("send failed", "err", err)
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func (t *Telegram) Notify(ctx context.Context, text string) error {
	return t.send(ctx, tgbotapi.NewMessage(t.chatID, text))
}

func (t *Telegram) SendDocument(ctx context.Context, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	return t.send(ctx, doc)
}
