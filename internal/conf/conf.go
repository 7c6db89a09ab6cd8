package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents application configuration.
type Config struct {
	// Bot configuration
	Bot BotConfig

	// Database configuration
	DB DBConfig

	// Locales configuration (loaded from YAML)
	Locales *LocalesConfig

	// Debug mode
	Debug bool
}

// BotConfig contains Telegram bot configuration.
type BotConfig struct {
	Token string
	// AdminIDs are process-level operators allowed to broadcast.
	AdminIDs map[int64]bool
}

// DBConfig contains database configuration.
type DBConfig struct {
	Path string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".gadobot", "gadobot.db")
	}

	admins := make(map[int64]bool)
	for _, field := range strings.Fields(strings.ReplaceAll(os.Getenv("ADMINS"), ",", " ")) {
		if id, err := strconv.ParseInt(field, 10, 64); err == nil {
			admins[id] = true
		}
	}

	locales, _ := LoadLocalesConfig(os.Getenv("LOCALES_PATH"))

	return &Config{
		Bot: BotConfig{
			Token:    os.Getenv("BOT_TOKEN"),
			AdminIDs: admins,
		},
		DB: DBConfig{
			Path: dbPath,
		},
		Locales: locales,
		Debug:   os.Getenv("DEBUG") == "true",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return &ConfigError{Field: "BOT_TOKEN", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
