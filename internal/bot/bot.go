// Package bot is the owner's Telegram console: dashboard figures, pending
// reminders, a reminder run and report delivery, answered only in the
// configured admin chat.
package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gympro/gympro-client/internal/dispatch"
	"github.com/gympro/gympro-client/internal/domain/dashboard"
	"github.com/gympro/gympro-client/internal/domain/reminders"
	"github.com/gympro/gympro-client/internal/infra/logger"
	"github.com/gympro/gympro-client/internal/report"
)

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Stats interface {
	Stats(ctx context.Context) (dashboard.Stats, error)
}

type Pending interface {
	Pending(ctx context.Context) ([]reminders.Pending, error)
}

type Reminders interface {
	Run(ctx context.Context) (dispatch.Summary, error)
}

// Reports delivers the exported document itself, normally through the
// telegram sink into the same chat.
type Reports interface {
	Export(ctx context.Context, t report.Type, f report.Format) (report.Result, error)
}

type Deps struct {
	Stats     Stats
	Pending   Pending
	Reminders Reminders
	Reports   Reports
}

type Bot struct {
	api       API
	log       *slog.Logger
	adminChat int64
	brand     string
	Deps
}

func New(api API, log *slog.Logger, adminChatID int64, brand string, d Deps) *Bot {
	if log == nil {
		log = logger.Discard()
	}
	return &Bot{api: api, log: log, adminChat: adminChatID, brand: brand, Deps: d}
}

// Run polls for updates until ctx is canceled or the channel closes.
func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.Chat == nil {
		return
	}
	if msg.Chat.ID != b.adminChat {
		b.log.Warn("message from foreign chat", "chat_id", msg.Chat.ID)
		b.reply(msg.Chat.ID, "This bot only answers the gym owner.")
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg.Chat.ID, msg.Command(), msg.CommandArguments())
		return
	}
	b.handleButton(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	if cb.Message == nil || cb.Message.Chat == nil || cb.Message.Chat.ID != b.adminChat {
		_ = b.answerCallback(cb, "Not allowed", true)
		return
	}
	b.handleCallback(ctx, cb)
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}
