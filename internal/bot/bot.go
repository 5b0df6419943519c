package bot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ref-bot/config"
	"ref-bot/internal/localization"
	"ref-bot/internal/session"
	"ref-bot/internal/storage"
)

// telegramAPI is the slice of tgbotapi.BotAPI the handlers use, split out so
// tests can drive the conversation against a fake transport.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMediaGroup(cfg tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type titleResolver interface {
	Resolve(ctx context.Context, rawURL string) string
}

type referenceStore interface {
	InsertReference(ref storage.Reference) (int64, error)
	ListRecent(limit int) ([]storage.Reference, error)
}

type TelegramBot struct {
	api       telegramAPI
	cfg       *config.Config
	localizer *localization.Localizer
	resolver  titleResolver
	storage   referenceStore
	sessions  *session.Store
	ctx       context.Context
}

func NewBot(
	ctx context.Context,
	cfg *config.Config,
	localizer *localization.Localizer,
	resolver titleResolver,
	store referenceStore,
	sessions *session.Store,
) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}
	api.Debug = false
	log.Printf("Authorized on account %s", api.Self.UserName)
	return &TelegramBot{
		api:       api,
		cfg:       cfg,
		localizer: localizer,
		resolver:  resolver,
		storage:   store,
		sessions:  sessions,
		ctx:       ctx,
	}, nil
}

func (b *TelegramBot) Start() {
	b.listenForUpdates()
}

func (b *TelegramBot) listenForUpdates() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	for update := range updates {
		// Each update is handled on its own goroutine; the per-session
		// lock keeps one user's events serial while a slow title lookup
		// for that user never stalls anyone else.
		go b.handleUpdate(update)
	}
}

func (b *TelegramBot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	if update.Message.IsCommand() {
		b.handleCommand(update.Message)
		return
	}
	b.handleMessage(update.Message)
}

func (b *TelegramBot) getLang() string {
	return b.cfg.DefaultLanguage
}

func (b *TelegramBot) msg(key string) string {
	return b.localizer.GetMessage(b.getLang(), key)
}

func (b *TelegramBot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}
