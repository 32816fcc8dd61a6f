package logger_test

import (
	"testing"

	"study-dashboard/internal/config"
	"study-dashboard/internal/logger"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		l, err := logger.New(config.LoggerConfig{Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("New(%s): %v", format, err)
		}
		l.WithFields("format", format).Debug("ready")
		if l.StdLog() == nil {
			t.Fatalf("expected std logger")
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := logger.New(config.LoggerConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
