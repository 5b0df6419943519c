package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ref-bot/internal/catalog"
)

func (b *TelegramBot) replyMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.msg("btn_start")),
			tgbotapi.NewKeyboardButton(b.msg("btn_stop")),
		),
	)
}

func (b *TelegramBot) mediaControlsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.msg("btn_media_done"), "media_done"),
			tgbotapi.NewInlineKeyboardButtonData(b.msg("btn_media_clear"), "media_clear"),
		),
	)
}

func (b *TelegramBot) categoriesKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, c := range catalog.Categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c, "cat:"+c))
		if (i+1)%3 == 0 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// tagsKeyboard renders the grouped tag catalog with a membership mark in
// front of every tag, so the control surface reflects the current selection
// after each toggle.
func (b *TelegramBot) tagsKeyboard(selected []string) tgbotapi.InlineKeyboardMarkup {
	selectedSet := make(map[string]bool, len(selected))
	for _, t := range selected {
		selectedSet[t] = true
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, group := range catalog.TagGroups {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(group.Label, "noop"),
		))
		var row []tgbotapi.InlineKeyboardButton
		for i, t := range group.Tags {
			mark := "• "
			if selectedSet[t] {
				mark = "✓ "
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(mark+t, "t:"+t))
			if (i+1)%3 == 0 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.msg("btn_tags_done"), "done"),
		tgbotapi.NewInlineKeyboardButtonData(b.msg("btn_tags_skip"), "skip"),
		tgbotapi.NewInlineKeyboardButtonData(b.msg("btn_tags_clear"), "clr"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *TelegramBot) skipKeyboard(field string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.msg("btn_skip"), "skip_"+field),
		),
	)
}
