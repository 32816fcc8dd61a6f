package config_test

import (
	"testing"
	"time"

	"study-dashboard/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "study_dashboard.db" {
		t.Errorf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.ReportTime != "07:00" {
		t.Errorf("unexpected report time %q", cfg.ReportTime)
	}
	if cfg.Assistant.Model != "gemini-2.5-flash" || cfg.Assistant.RatePerMinute != 10 {
		t.Errorf("unexpected assistant config %+v", cfg.Assistant)
	}
	if cfg.Assistant.Timeout != 20*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Assistant.Timeout)
	}
	if err := cfg.ValidateBot(); err == nil {
		t.Errorf("expected missing token error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", " token ")
	t.Setenv("OWNER_CHAT_ID", "42")
	t.Setenv("REPORT_TIME", "06:30")
	t.Setenv("TIMEZONE", "America/Bogota")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("ASSISTANT_RATE_PER_MINUTE", "3")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TelegramToken != "token" || cfg.OwnerChatID != 42 || cfg.ReportTime != "06:30" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Logger.Format != "json" || cfg.Assistant.RatePerMinute != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if err := cfg.ValidateBot(); err != nil {
		t.Fatalf("ValidateBot: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "America/Bogota" {
		t.Fatalf("unexpected location %v %v", loc, err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"REPORT_TIME": "7am",
		"LOG_FORMAT":  "xml",
		"TIMEZONE":    "Mars/Olympus",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestEmptyReportTimeDisablesReport(t *testing.T) {
	t.Setenv("REPORT_TIME", "")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ReportTime != "" {
		t.Fatalf("expected empty report time, got %q", cfg.ReportTime)
	}
}
