package bot

import (
	"log"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ref-bot/internal/caption"
	"ref-bot/internal/session"
	"ref-bot/internal/storage"
)

// finalize validates the collected submission, publishes the media group to
// the channel and records it. On a publish failure the session is left
// untouched so the user can retry without re-entering anything.
func (b *TelegramBot) finalize(chatID int64, s *session.Session) {
	if len(s.Media) == 0 {
		s.Reset()
		msg := tgbotapi.NewMessage(chatID, b.msg("finalize_no_media"))
		msg.ReplyMarkup = b.replyMenu()
		b.send(msg)
		return
	}

	title := s.Title
	if title == "" {
		title = s.SourceURL
	}
	postCaption := caption.Compose(title, s.SourceURL, caption.Credits{
		Dir:   s.Dir,
		Dop:   s.Dop,
		Color: s.Color,
		Prod:  s.Prod,
	}, s.Category, s.SelectedTags)

	group := buildMediaGroup(b.channelBaseChat(), s.Media, postCaption)
	messages, err := b.api.SendMediaGroup(group)
	if err != nil {
		log.Printf("Failed to publish media group to channel: %v", err)
		b.send(tgbotapi.NewMessage(chatID, b.msg("publish_failed")))
		return
	}

	var firstID int64
	if len(messages) > 0 {
		firstID = int64(messages[0].MessageID)
	}

	id, err := b.storage.InsertReference(storage.Reference{
		SourceURL:        s.SourceURL,
		Title:            title,
		Category:         s.Category,
		Tags:             s.SelectedTags,
		Dir:              s.Dir,
		Dop:              s.Dop,
		Color:            s.Color,
		Prod:             s.Prod,
		ChannelMessageID: firstID,
		Media:            s.Media,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		// The post is already out; losing the record must not take the
		// session down with it.
		log.Printf("CRITICAL: failed to persist submission for %s: %v", s.SourceURL, err)
	} else {
		log.Printf("Stored submission %d for %s", id, s.SourceURL)
	}

	msg := tgbotapi.NewMessage(chatID, b.msg("publish_success"))
	msg.ReplyMarkup = b.replyMenu()
	b.send(msg)
	s.Reset()
}

// channelBaseChat accepts either a numeric chat ID or an @username for the
// destination channel.
func (b *TelegramBot) channelBaseChat() tgbotapi.BaseChat {
	raw := b.cfg.TelegramChannelID
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return tgbotapi.BaseChat{ChatID: id}
	}
	return tgbotapi.BaseChat{ChannelUsername: raw}
}

// buildMediaGroup assembles the mixed album; the caption rides on the first
// item only.
func buildMediaGroup(base tgbotapi.BaseChat, media []session.MediaRef, postCaption string) tgbotapi.MediaGroupConfig {
	var items []interface{}
	for i, m := range media {
		switch m.Kind {
		case session.KindPhoto:
			item := tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(m.FileID))
			if i == 0 {
				item.Caption = postCaption
				item.ParseMode = tgbotapi.ModeHTML
			}
			items = append(items, item)
		case session.KindVideo:
			item := tgbotapi.NewInputMediaVideo(tgbotapi.FileID(m.FileID))
			if i == 0 {
				item.Caption = postCaption
				item.ParseMode = tgbotapi.ModeHTML
			}
			items = append(items, item)
		case session.KindAnimation:
			item := tgbotapi.NewInputMediaAnimation(tgbotapi.FileID(m.FileID))
			if i == 0 {
				item.Caption = postCaption
				item.ParseMode = tgbotapi.ModeHTML
			}
			items = append(items, item)
		}
	}
	return tgbotapi.MediaGroupConfig{ChatID: base.ChatID, ChannelUsername: base.ChannelUsername, Media: items}
}
