package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gympro/gympro-client/internal/report"
)

func ownerReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnStats), tgbotapi.NewKeyboardButton(btnPending)},
			{tgbotapi.NewKeyboardButton(btnRemind)},
			{tgbotapi.NewKeyboardButton(btnReports)},
		},
	}
}

// reportKeyboard has one row per report type with a PDF and an Excel button.
func reportKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(report.Types))
	for _, t := range report.Types {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Title()+" PDF", "report:"+string(t)+":"+string(report.PDF)),
			tgbotapi.NewInlineKeyboardButtonData("Excel", "report:"+string(t)+":"+string(report.XLSX)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
