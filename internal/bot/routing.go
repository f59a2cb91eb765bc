package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gympro/gympro-client/internal/report"
)

const (
	btnStats   = "Stats"
	btnPending = "Pending"
	btnRemind  = "Send reminders"
	btnReports = "Reports"
)

func (b *Bot) handleCommand(ctx context.Context, chatID int64, cmd, args string) {
	switch cmd {
	case "start", "help":
		m := tgbotapi.NewMessage(chatID, fmt.Sprintf("Hi! This is the %s owner console. Use the buttons below or /stats, /pending, /remind and /report.", b.brand))
		m.ReplyMarkup = ownerReplyKeyboard()
		b.send(m)
	case "stats":
		b.stats(ctx, chatID)
	case "pending":
		b.pending(ctx, chatID)
	case "remind":
		b.remind(ctx, chatID)
	case "report":
		b.report(ctx, chatID, strings.Fields(args))
	default:
		b.reply(chatID, "Unknown command. Try /help.")
	}
}

// handleButton maps reply keyboard presses onto commands.
func (b *Bot) handleButton(ctx context.Context, msg *tgbotapi.Message) {
	switch strings.TrimSpace(msg.Text) {
	case btnStats:
		b.stats(ctx, msg.Chat.ID)
	case btnPending:
		b.pending(ctx, msg.Chat.ID)
	case btnRemind:
		b.remind(ctx, msg.Chat.ID)
	case btnReports:
		b.report(ctx, msg.Chat.ID, nil)
	default:
		m := tgbotapi.NewMessage(msg.Chat.ID, "Choose an action from the menu.")
		m.ReplyMarkup = ownerReplyKeyboard()
		b.send(m)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	t, f, ok := parseReportData(cb.Data)
	if !ok {
		_ = b.answerCallback(cb, "Unknown action", false)
		return
	}
	_ = b.answerCallback(cb, "Preparing "+t.Title(), false)
	// drop the picker so the same report is not requested twice
	b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}))
	b.export(ctx, chatID, t, f)
}

func (b *Bot) stats(ctx context.Context, chatID int64) {
	s, err := b.Stats.Stats(ctx)
	if err != nil {
		b.log.Error("stats failed", "err", err)
		b.reply(chatID, "Could not load the dashboard. Please try again.")
		return
	}
	b.reply(chatID, formatStats(s))
}

func (b *Bot) pending(ctx context.Context, chatID int64) {
	ps, err := b.Pending.Pending(ctx)
	if err != nil {
		b.log.Error("pending reminders failed", "err", err)
		b.reply(chatID, "Could not load pending reminders. Please try again.")
		return
	}
	b.reply(chatID, formatPending(ps))
}

// remind runs the dispatcher; with anything pending it posts its own
// summary into this chat.
func (b *Bot) remind(ctx context.Context, chatID int64) {
	s, err := b.Reminders.Run(ctx)
	if err != nil {
		b.log.Error("reminder run failed", "err", err)
		b.reply(chatID, "Reminders were not sent: "+err.Error())
		return
	}
	if s.Pending == 0 {
		b.reply(chatID, "Nothing to remind, every member is up to date.")
	}
}

func (b *Bot) report(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		m := tgbotapi.NewMessage(chatID, "Which report?")
		m.ReplyMarkup = reportKeyboard()
		b.send(m)
		return
	}
	t, err := report.ParseType(args[0])
	if err != nil {
		b.reply(chatID, "Unknown report. Choose one of: "+typeList())
		return
	}
	f := report.PDF
	if len(args) > 1 {
		if f, err = report.ParseFormat(args[1]); err != nil {
			b.reply(chatID, "Format must be pdf or xlsx.")
			return
		}
	}
	b.export(ctx, chatID, t, f)
}

func (b *Bot) export(ctx context.Context, chatID int64, t report.Type, f report.Format) {
	res, err := b.Reports.Export(ctx, t, f)
	if err != nil {
		b.log.Error("report export failed", "type", t, "format", f, "err", err)
		b.reply(chatID, "Export failed. Please try again.")
		return
	}
	b.log.Info("report delivered", "name", res.Name, "bytes", res.Size)
}

func parseReportData(data string) (report.Type, report.Format, bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != "report" {
		return "", "", false
	}
	t, err := report.ParseType(parts[1])
	if err != nil {
		return "", "", false
	}
	f, err := report.ParseFormat(parts[2])
	if err != nil {
		return "", "", false
	}
	return t, f, true
}

func typeList() string {
	names := make([]string, 0, len(report.Types))
	for _, t := range report.Types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
