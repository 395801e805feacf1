package config

import (
	"strings"
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Defaults", func(t *testing.T) {
		setEnv("TELEGRAM_BOT_TOKEN", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/nutriplan.db" {
			t.Errorf("Expected DatabasePath 'data/nutriplan.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.USDAAPIURL != "https://api.nal.usda.gov/fdc/v1" {
			t.Errorf("Expected default USDA URL, got '%s'", cfg.USDAAPIURL)
		}
		if cfg.ShareTTL != 168*time.Hour {
			t.Errorf("Expected ShareTTL 168h, got %v", cfg.ShareTTL)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected Port '8080', got '%s'", cfg.Port)
		}
		if cfg.TelegramEnabled() {
			t.Error("Expected Telegram to be disabled")
		}
	})

	t.Run("Overrides", func(t *testing.T) {
		setEnv("DATABASE_PATH", "/tmp/x.db")
		setEnv("SHARE_SECRET", "s3cret")
		setEnv("SHARE_TTL", "2h")
		setEnv("RANDOM_SEED", "42")
		setEnv("LOG_DEVELOPMENT", "true")
		setEnv("TELEGRAM_BOT_TOKEN", "token")
		setEnv("TELEGRAM_WEBHOOK_URL", "https://bot.test/webhook")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "10,20")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/x.db" {
			t.Errorf("Expected DatabasePath '/tmp/x.db', got '%s'", cfg.DatabasePath)
		}
		if !cfg.SharingEnabled() || cfg.ShareTTL != 2*time.Hour {
			t.Errorf("Expected sharing enabled with 2h TTL, got %v %v", cfg.SharingEnabled(), cfg.ShareTTL)
		}
		if cfg.RandomSeed != 42 {
			t.Errorf("Expected RandomSeed 42, got %d", cfg.RandomSeed)
		}
		if !cfg.LogDevelopment {
			t.Error("Expected LogDevelopment true")
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[1] != 20 {
			t.Errorf("Expected allowed IDs [10 20], got %v", cfg.TelegramAllowedUserIDs)
		}
		if !cfg.IsTelegramUserAllowed(10) || cfg.IsTelegramUserAllowed(30) {
			t.Error("Unexpected allow-list result")
		}
	})

	t.Run("MissingWebhookURL", func(t *testing.T) {
		setEnv("TELEGRAM_BOT_TOKEN", "token")
		setEnv("TELEGRAM_WEBHOOK_URL", "")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing TELEGRAM_WEBHOOK_URL, got nil")
		}
		expectedError := "TELEGRAM_WEBHOOK_URL environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		setEnv("TELEGRAM_BOT_TOKEN", "")
		setEnv("SHARE_TTL", "forever")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for invalid SHARE_TTL, got nil")
		}
		if !strings.HasPrefix(err.Error(), "parse env:") {
			t.Errorf("Expected 'parse env:' prefix, got '%s'", err.Error())
		}
	})
}

func TestIsTelegramUserAllowed(t *testing.T) {
	t.Run("empty allow-list admits everyone", func(t *testing.T) {
		cfg := &Config{}
		if !cfg.IsTelegramUserAllowed(99) {
			t.Error("Expected user to be allowed")
		}
	})

	t.Run("admin is always allowed", func(t *testing.T) {
		cfg := &Config{TelegramAllowedUserIDs: []int64{1}, AdminTelegramID: 7}
		if !cfg.IsTelegramUserAllowed(7) {
			t.Error("Expected admin to be allowed")
		}
		if cfg.IsTelegramUserAllowed(8) {
			t.Error("Expected stranger to be rejected")
		}
	})
}
