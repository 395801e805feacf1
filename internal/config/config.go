package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath       string `env:"DATABASE_PATH" envDefault:"data/nutriplan.db"`
	ArchivePath        string `env:"ARCHIVE_PATH" envDefault:"data/archive"`
	NutritionCachePath string `env:"NUTRITION_CACHE_PATH" envDefault:"data/nutrition_cache.json"`
	ScoringConfigPath  string `env:"SCORING_CONFIG_PATH"`

	// USDA FoodData Central; lookups are disabled without a key.
	USDAAPIKey string `env:"USDA_API_KEY"`
	USDAAPIURL string `env:"USDA_API_URL" envDefault:"https://api.nal.usda.gov/fdc/v1"`

	// Share links are disabled without a secret.
	ShareSecret string        `env:"SHARE_SECRET"`
	ShareTTL    time.Duration `env:"SHARE_TTL" envDefault:"168h"`

	Port           string `env:"PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT"`

	// 0 seeds from the clock.
	RandomSeed int64 `env:"RANDOM_SEED"`

	// Telegram Config
	TelegramBotToken       string  `env:"TELEGRAM_BOT_TOKEN"`
	TelegramWebhookURL     string  `env:"TELEGRAM_WEBHOOK_URL"`
	TelegramAllowedUserIDs []int64 `env:"TELEGRAM_ALLOWED_USER_IDS" envSeparator:","`
	AdminTelegramID        int64   `env:"ADMIN_TELEGRAM_ID"`
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT environment variable not set")
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramWebhookURL == "" {
		return nil, fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}

	return cfg, nil
}

// SharingEnabled reports whether share links can be issued.
func (c *Config) SharingEnabled() bool {
	return c.ShareSecret != ""
}

// TelegramEnabled reports whether the Telegram bot should start.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

// IsTelegramUserAllowed reports whether a Telegram user may use the bot.
// An empty allow-list admits everyone.
func (c *Config) IsTelegramUserAllowed(userID int64) bool {
	if len(c.TelegramAllowedUserIDs) == 0 {
		return true
	}
	for _, id := range c.TelegramAllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return userID != 0 && userID == c.AdminTelegramID
}
