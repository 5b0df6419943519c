package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramBotToken  string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	TelegramChannelID string `envconfig:"TELEGRAM_CHANNEL_ID" required:"true"`

	// Credential hints for the yt-dlp metadata strategy. The cookies file
	// takes precedence over browser-derived cookies when both are set.
	YtdlpCookiesFile string `envconfig:"YTDLP_COOKIES_FILE"`
	YtdlpBrowser     string `envconfig:"YTDLP_BROWSER"`
	YtdlpImpersonate string `envconfig:"YTDLP_IMPERSONATE"`

	DatabasePath    string `envconfig:"DATABASE_PATH" default:"work/references.db"`
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:"en"`

	SessionTTLHours        int `envconfig:"SESSION_TTL_HOURS" default:"12"`
	JanitorIntervalMinutes int `envconfig:"JANITOR_INTERVAL_MINUTES" default:"60"`
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config
	err = envconfig.Process("", &cfg)
	if err != nil {
		log.Fatalf("Failed to process configuration: %v", err)
	}

	return cfg
}
