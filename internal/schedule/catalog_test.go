package schedule_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"study-dashboard/internal/schedule"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := schedule.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(c.Subjects) != 5 {
		t.Fatalf("expected 5 subjects, got %d", len(c.Subjects))
	}
	if !c.HasSubject("Simulación") {
		t.Fatalf("expected Simulación in subjects")
	}
	if c.HasSubject("simulación") {
		t.Fatalf("subject matching must be case-sensitive")
	}
	thursday := schedule.SessionsForDay(c.Sessions, time.Thursday)
	if len(thursday) != 3 || thursday[0].StartTime != "07:00" {
		t.Fatalf("unexpected thursday: %#v", thursday)
	}
	if len(c.MentoringHours) == 0 {
		t.Fatalf("expected mentoring hours")
	}
	if c.Profile.Name == "" {
		t.Fatalf("expected profile name")
	}
}

func TestParseRejectsUnpaddedTimes(t *testing.T) {
	raw := `
sessions:
  - {id: bad, subject: X, day: 1, start: "7:00", end: "09:00"}
`
	_, err := schedule.Parse([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "zero-padded") {
		t.Fatalf("expected zero-padded error, got %v", err)
	}
}

func TestParseRejectsBadDay(t *testing.T) {
	raw := `
sessions:
  - {id: bad, subject: X, day: 7, start: "07:00", end: "09:00"}
`
	if _, err := schedule.Parse([]byte(raw)); err == nil {
		t.Fatalf("expected error for day 7")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	raw := `
subjects: [Cálculo]
sessions:
  - {id: calc, subject: Cálculo, day: 6, start: "08:00", end: "10:00", room: "201"}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := schedule.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := schedule.SessionsForDay(c.Sessions, time.Saturday)
	if len(got) != 1 || got[0].Room != "201" {
		t.Fatalf("unexpected sessions %#v", got)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := schedule.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Sessions) != 10 {
		t.Fatalf("expected 10 default sessions, got %d", len(c.Sessions))
	}
}
