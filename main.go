package main

import (
	"context"
	"embed"
	"log"
	"time"

	"ref-bot/config"
	"ref-bot/internal/bot"
	"ref-bot/internal/localization"
	"ref-bot/internal/scheduler"
	"ref-bot/internal/session"
	"ref-bot/internal/storage"
	"ref-bot/internal/titles"
)

//go:embed locales
var localeFiles embed.FS

func main() {
	log.Println("Starting Reference Bot...")

	ctx := context.Background()
	cfg := config.LoadConfig()

	dbStorage, err := storage.NewStorage(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStorage.Close()

	localizer := localization.NewLocalizer(localeFiles)
	resolver := titles.NewResolver(titles.Credentials{
		CookiesFile: cfg.YtdlpCookiesFile,
		Browser:     cfg.YtdlpBrowser,
		Impersonate: cfg.YtdlpImpersonate,
	})
	sessions := session.NewStore()

	appScheduler, err := scheduler.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	appScheduler.AddJob(time.Duration(cfg.JanitorIntervalMinutes)*time.Minute, func() {
		if reaped := sessions.ReapStale(ttl); reaped > 0 {
			log.Printf("Reset %d stale session(s)", reaped)
		}
	})
	appScheduler.Start()
	defer appScheduler.Shutdown()

	telegramBot, err := bot.NewBot(ctx, &cfg, localizer, resolver, dbStorage, sessions)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	log.Println("Bot is running...")
	telegramBot.Start()
}
