package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config keeps runtime settings for the dashboard.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	OwnerChatID   int64
	// ReportTime is the HH:MM of the daily report. Empty disables it.
	ReportTime  string
	Timezone    string
	CatalogPath string

	Assistant AssistantConfig
	Logger    LoggerConfig
}

// AssistantConfig configures the Gemini collaborator. An empty APIKey
// turns it off and the dashboard answers with fallback messages.
type AssistantConfig struct {
	APIKey        string
	Model         string
	RatePerMinute int
	Timeout       time.Duration
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string
}

var defaults = map[string]any{
	"DATABASE_URL":              "study_dashboard.db",
	"REPORT_TIME":               "07:00",
	"TIMEZONE":                  "Local",
	"GEMINI_MODEL":              "gemini-2.5-flash",
	"ASSISTANT_RATE_PER_MINUTE": 10,
	"ASSISTANT_TIMEOUT":         "20s",
	"LOG_LEVEL":                 "info",
	"LOG_FORMAT":                "console",
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory. The Telegram token is checked by
// ValidateBot, so commands that never talk to Telegram can run without it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := Config{
		TelegramToken: strings.TrimSpace(v.GetString("TELEGRAM_TOKEN")),
		DatabaseURL:   strings.TrimSpace(v.GetString("DATABASE_URL")),
		OwnerChatID:   v.GetInt64("OWNER_CHAT_ID"),
		ReportTime:    strings.TrimSpace(v.GetString("REPORT_TIME")),
		Timezone:      strings.TrimSpace(v.GetString("TIMEZONE")),
		CatalogPath:   strings.TrimSpace(v.GetString("CATALOG_PATH")),
		Assistant: AssistantConfig{
			APIKey:        strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
			Model:         strings.TrimSpace(v.GetString("GEMINI_MODEL")),
			RatePerMinute: v.GetInt("ASSISTANT_RATE_PER_MINUTE"),
			Timeout:       v.GetDuration("ASSISTANT_TIMEOUT"),
		},
		Logger: LoggerConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		},
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "study_dashboard.db"
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "gemini-2.5-flash"
	}
	if cfg.Assistant.Timeout <= 0 {
		cfg.Assistant.Timeout = 20 * time.Second
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "console"
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ValidateBot checks the settings only the Telegram front-end needs.
func (c Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	return nil
}

// Location resolves Timezone. "Local" and "" mean the process zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) validate() error {
	if c.ReportTime != "" {
		if _, err := time.Parse("15:04", c.ReportTime); err != nil {
			return fmt.Errorf("REPORT_TIME %q: expected HH:MM", c.ReportTime)
		}
	}
	if c.Assistant.RatePerMinute < 0 {
		return fmt.Errorf("ASSISTANT_RATE_PER_MINUTE must not be negative")
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT %q: expected console or json", c.Logger.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
