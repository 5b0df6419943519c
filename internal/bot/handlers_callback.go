package bot

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ref-bot/internal/catalog"
	"ref-bot/internal/session"
)

func (b *TelegramBot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	userID := callback.From.ID
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	action, data, _ := strings.Cut(callback.Data, ":")
	callbackAns := tgbotapi.NewCallback(callback.ID, "")

	b.sessions.With(userID, func(s *session.Session) {
		switch {
		case action == "noop":

		case action == "media_done" && s.State == session.StateCollectingMedia:
			if len(s.Media) == 0 {
				b.send(tgbotapi.NewMessage(chatID, b.msg("media_need_one")))
				return
			}
			s.State = session.StateChoosingCategory
			msg := tgbotapi.NewMessage(chatID, b.msg("choose_category"))
			msg.ReplyMarkup = b.categoriesKeyboard()
			b.send(msg)

		case action == "media_clear" && s.State == session.StateCollectingMedia:
			s.ClearMedia()
			b.send(tgbotapi.NewMessage(chatID, b.msg("media_cleared")))
			callbackAns.Text = b.msg("callback_cleared")

		case action == "cat" && s.State == session.StateChoosingCategory:
			if !catalog.IsValidCategory(data) {
				log.Printf("Ignoring unknown category %q from user %d", data, userID)
				return
			}
			s.SetCategory(data)
			s.State = session.StateChoosingTags
			edit := tgbotapi.NewEditMessageText(chatID, messageID, fmt.Sprintf(b.msg("category_chosen"), data))
			edit.ParseMode = tgbotapi.ModeHTML
			keyboard := b.tagsKeyboard(nil)
			edit.ReplyMarkup = &keyboard
			b.send(edit)

		case action == "t" && s.State == session.StateChoosingTags:
			if !catalog.IsValidTag(data) {
				log.Printf("Ignoring unknown tag %q from user %d", data, userID)
				return
			}
			s.ToggleTag(data)
			keyboard := b.tagsKeyboard(s.SelectedTags)
			b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, keyboard))

		case action == "clr" && s.State == session.StateChoosingTags:
			s.ClearTags()
			keyboard := b.tagsKeyboard(nil)
			b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, keyboard))
			callbackAns.Text = b.msg("tags_cleared")

		// "done" proceeds with the toggled tags; "skip" is the explicit
		// no-tags affordance. Both move on to the credit fields.
		case (action == "done" || action == "skip") && s.State == session.StateChoosingTags:
			s.State = session.StateEnteringDir
			b.askCredit(chatID, "dir")

		case action == "skip_dir" && s.State == session.StateEnteringDir:
			s.Dir = ""
			s.State = session.StateEnteringDop
			b.askCredit(chatID, "dop")

		case action == "skip_dop" && s.State == session.StateEnteringDop:
			s.Dop = ""
			s.State = session.StateEnteringColor
			b.askCredit(chatID, "color")

		case action == "skip_color" && s.State == session.StateEnteringColor:
			s.Color = ""
			s.State = session.StateEnteringProd
			b.askCredit(chatID, "prod")

		case action == "skip_prod" && s.State == session.StateEnteringProd:
			s.Prod = ""
			b.finalize(chatID, s)

		default:
			log.Printf("Ignoring out-of-state callback %q from user %d in state %s", callback.Data, userID, s.State)
		}
	})

	if _, err := b.api.Request(callbackAns); err != nil {
		log.Printf("Failed to answer callback query: %v", err)
	}
}
