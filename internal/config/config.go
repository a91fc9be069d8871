package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	CompatList   bool

	// Telegram Config (only required for the bot binary)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
	ListenAddr          string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dbPath := getEnv("MEAL_PLANNER_DB", "meals.db")

	compatList := false
	if v := os.Getenv("MEAL_PLANNER_COMPAT_LIST"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MEAL_PLANNER_COMPAT_LIST value %q: %w", v, err)
		}
		compatList = parsed
	}

	var allowUserID int64
	if v := os.Getenv("TELEGRAM_ALLOW_USER_ID"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_ID value %q: %w", v, err)
		}
		allowUserID = parsed
	}

	return &Config{
		DatabasePath:        dbPath,
		CompatList:          compatList,
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:  os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowUserID: allowUserID,
		ListenAddr:          ":" + getEnv("PORT", "8080"),
	}, nil
}

// ValidateForBot checks the fields the Telegram bot cannot run without.
func (c *Config) ValidateForBot() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
