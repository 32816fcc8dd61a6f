package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
)

func TestParseDay(t *testing.T) {
	cases := map[string]time.Weekday{
		"0":         time.Sunday,
		"6":         time.Saturday,
		"lunes":     time.Monday,
		"Miércoles": time.Wednesday,
		"miercoles": time.Wednesday,
		"SABADO":    time.Saturday,
	}
	for in, want := range cases {
		got, err := parseDay(in)
		if err != nil || got != want {
			t.Errorf("parseDay(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"7", "-1", "someday"} {
		if _, err := parseDay(bad); err == nil {
			t.Errorf("parseDay(%q) expected error", bad)
		}
	}
}

func TestPrintAgendaFreeDay(t *testing.T) {
	var buf bytes.Buffer
	printAgenda(&buf, time.Sunday, nil)
	if got := buf.String(); got != "Domingo\n  free day\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintTasks(t *testing.T) {
	var buf bytes.Buffer
	printTasks(&buf, []model.Task{{
		ID:       "0123456789abcdef",
		Title:    "Informe",
		Priority: model.PriorityHigh,
		Subject:  "Simulación",
		DueDate:  time.Date(2025, 11, 21, 8, 0, 0, 0, time.UTC),
	}})
	out := buf.String()
	for _, want := range []string{"ID", "01234567", "HIGH", "2025-11-21 08:00", "Informe"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "89abcdef") {
		t.Error("id not shortened")
	}
}

func TestPrintWeek(t *testing.T) {
	var buf bytes.Buffer
	printWeek(&buf, planner.WeeklyReport{Academic: 2, Effectiveness: 60}, time.UTC)
	if got := buf.String(); got != "effectiveness 60%\nacademic 2, mentoring 0, personal 0\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"serve", "agenda", "tasks", "week"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %s not registered: %v", name, err)
		}
	}
}
