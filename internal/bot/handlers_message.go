package bot

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ref-bot/internal/caption"
	"ref-bot/internal/session"
)

var linkRE = regexp.MustCompile(`https?://\S+`)

func (b *TelegramBot) handleCommand(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "")
	switch message.Command() {
	case "start":
		b.sessions.With(message.From.ID, func(s *session.Session) {
			s.Enabled = true
			s.State = session.StateIdle
		})
		msg.Text = b.msg("welcome_message")
		msg.ReplyMarkup = b.replyMenu()
	case "help":
		msg.Text = b.msg("help_message")
	case "recent":
		b.handleRecentCommand(message)
		return
	default:
		return
	}
	b.send(msg)
}

func (b *TelegramBot) handleRecentCommand(message *tgbotapi.Message) {
	refs, err := b.storage.ListRecent(5)
	if err != nil {
		log.Printf("Failed to list recent submissions: %v", err)
		return
	}
	var builder strings.Builder
	builder.WriteString(b.msg("recent_title") + "\n\n")
	if len(refs) == 0 {
		builder.Reset()
		builder.WriteString(b.msg("recent_empty"))
	}
	for _, ref := range refs {
		builder.WriteString(caption.LinkLine(ref.Title, ref.SourceURL))
		if line := caption.Hashtags(ref.Category, ref.Tags); line != "" {
			builder.WriteString("\n" + line)
		}
		builder.WriteString("\n\n")
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, strings.TrimSpace(builder.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	b.send(msg)
}

func (b *TelegramBot) handleMessage(message *tgbotapi.Message) {
	switch message.Text {
	case b.msg("btn_start"):
		b.handleStartControl(message)
		return
	case b.msg("btn_stop"):
		b.handleStopControl(message)
		return
	}
	b.sessions.With(message.From.ID, func(s *session.Session) {
		b.handleSessionMessage(message, s)
	})
}

// handleStartControl re-enables the bot and forces the session back to idle.
func (b *TelegramBot) handleStartControl(message *tgbotapi.Message) {
	b.sessions.With(message.From.ID, func(s *session.Session) {
		s.Enabled = true
		s.State = session.StateIdle
	})
	msg := tgbotapi.NewMessage(message.Chat.ID, b.msg("started_message"))
	msg.ReplyMarkup = b.replyMenu()
	b.send(msg)
}

// handleStopControl pauses the bot and discards any partial submission.
func (b *TelegramBot) handleStopControl(message *tgbotapi.Message) {
	b.sessions.With(message.From.ID, func(s *session.Session) {
		s.Reset()
		s.Enabled = false
	})
	msg := tgbotapi.NewMessage(message.Chat.ID, b.msg("stopped_message"))
	msg.ReplyMarkup = b.replyMenu()
	b.send(msg)
}

func (b *TelegramBot) handleSessionMessage(message *tgbotapi.Message, s *session.Session) {
	switch s.State {
	case session.StateIdle:
		link := linkRE.FindString(message.Text)
		if link == "" {
			return
		}
		b.handleNewLink(message, s, link)
	case session.StateCollectingMedia:
		b.handleMediaMessage(message, s)
	case session.StateEnteringDir:
		s.Dir = strings.TrimSpace(message.Text)
		s.State = session.StateEnteringDop
		b.askCredit(message.Chat.ID, "dop")
	case session.StateEnteringDop:
		s.Dop = strings.TrimSpace(message.Text)
		s.State = session.StateEnteringColor
		b.askCredit(message.Chat.ID, "color")
	case session.StateEnteringColor:
		s.Color = strings.TrimSpace(message.Text)
		s.State = session.StateEnteringProd
		b.askCredit(message.Chat.ID, "prod")
	case session.StateEnteringProd:
		s.Prod = strings.TrimSpace(message.Text)
		b.finalize(message.Chat.ID, s)
	default:
		log.Printf("Ignoring out-of-state message from user %d in state %s", message.From.ID, s.State)
	}
}

// handleNewLink starts a submission cycle: resolve the title once, seed the
// session, and move to media collection.
func (b *TelegramBot) handleNewLink(message *tgbotapi.Message, s *session.Session, link string) {
	if !s.Enabled {
		msg := tgbotapi.NewMessage(message.Chat.ID, b.msg("paused_notice"))
		msg.ReplyMarkup = b.replyMenu()
		b.send(msg)
		return
	}

	title := b.resolver.Resolve(b.ctx, link)
	if title == "" {
		title = link
	}
	s.BeginCycle(link, title)

	msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf(b.msg("title_found"), title))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = b.replyMenu()
	b.send(msg)

	controls := tgbotapi.NewMessage(message.Chat.ID, b.msg("media_controls"))
	controls.ReplyMarkup = b.mediaControlsKeyboard()
	b.send(controls)
}

func (b *TelegramBot) handleMediaMessage(message *tgbotapi.Message, s *session.Session) {
	ref, ok := mediaRefFromMessage(message)
	if !ok {
		log.Printf("Ignoring non-media message from user %d while collecting media", message.From.ID)
		return
	}
	count, accepted := s.AppendMedia(ref)
	text := fmt.Sprintf(b.msg("media_added"), count)
	if !accepted {
		text = b.msg("media_limit")
	}
	b.send(tgbotapi.NewMessage(message.Chat.ID, text))
}

func mediaRefFromMessage(message *tgbotapi.Message) (session.MediaRef, bool) {
	switch {
	case len(message.Photo) > 0:
		// The last photo size is the largest rendition.
		return session.MediaRef{Kind: session.KindPhoto, FileID: message.Photo[len(message.Photo)-1].FileID}, true
	case message.Video != nil:
		return session.MediaRef{Kind: session.KindVideo, FileID: message.Video.FileID}, true
	case message.Animation != nil:
		return session.MediaRef{Kind: session.KindAnimation, FileID: message.Animation.FileID}, true
	}
	return session.MediaRef{}, false
}

func (b *TelegramBot) askCredit(chatID int64, field string) {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(b.msg("ask_credit"), field))
	msg.ReplyMarkup = b.skipKeyboard(field)
	b.send(msg)
}
