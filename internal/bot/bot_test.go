package bot

import (
	"errors"
	"testing"

	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
	"study-dashboard/internal/wizard"
)

func TestParseListArgs(t *testing.T) {
	cases := []struct {
		args       string
		wantView   planner.View
		wantFilter string
	}{
		{"", planner.ViewPriority, ""},
		{"prioridad alta", planner.ViewPriority, "HIGH"},
		{"alta", planner.ViewPriority, "HIGH"},
		{"materias Simulación", planner.ViewSubject, "Simulación"},
		{"Modelos Estadísticos", planner.ViewSubject, "Modelos Estadísticos"},
		{"horario", planner.ViewCalendar, ""},
	}
	for _, tc := range cases {
		view, filter := parseListArgs(tc.args)
		if view != tc.wantView || filter != tc.wantFilter {
			t.Errorf("parseListArgs(%q) = %s, %q; want %s, %q", tc.args, view, filter, tc.wantView, tc.wantFilter)
		}
	}
}

func TestResolveTaskID(t *testing.T) {
	tasks := []model.Task{
		{ID: "1a2b3c4d-0000-0000-0000-000000000001"},
		{ID: "1a2b9999-0000-0000-0000-000000000002"},
	}

	if got, err := resolveTaskID(tasks, "1A2B3C"); err != nil || got != tasks[0].ID {
		t.Fatalf("prefix = %q, %v", got, err)
	}
	if got, err := resolveTaskID(tasks, tasks[1].ID); err != nil || got != tasks[1].ID {
		t.Fatalf("full id = %q, %v", got, err)
	}
	if _, err := resolveTaskID(tasks, "1a2b"); !errors.Is(err, errAmbiguousID) {
		t.Fatalf("ambiguous err = %v", err)
	}
	if _, err := resolveTaskID(tasks, "ffff"); !errors.Is(err, errNoSuchTask) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestParseCallback(t *testing.T) {
	action, value := parseCallback("toggle:abc:def")
	if action != cbTogglePrefix || value != "abc:def" {
		t.Fatalf("got %q %q", action, value)
	}
	if action, _ := parseCallback("garbage"); action != "" {
		t.Fatalf("garbage action = %q", action)
	}
}

func TestKindFromLabel(t *testing.T) {
	for label, want := range map[string]wizard.Kind{
		"📝 Tarea":     wizard.KindTask,
		"reunión":     wizard.KindMeeting,
		" Pregunta ":  wizard.KindQuestion,
		"🧑‍🏫 Monitoría": wizard.KindMentoring,
	} {
		got, ok := kindFromLabel(label)
		if !ok || got != want {
			t.Errorf("kindFromLabel(%q) = %s, %v", label, got, ok)
		}
	}
	if _, ok := kindFromLabel("otra cosa"); ok {
		t.Error("unknown label accepted")
	}
}

func TestFieldKeyboardOffersSkipOnlyForOptional(t *testing.T) {
	m := wizard.New()
	if err := m.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := m.Choose(wizard.KindTask); err != nil {
		t.Fatal(err)
	}

	hasSkip := func(f wizard.Field) bool {
		kb := fieldKeyboard(m, f, []string{"Simulación", "Calidad", "Modelos"})
		for _, row := range kb.Keyboard {
			for _, btn := range row {
				if btn.Text == btnSkip {
					return true
				}
			}
		}
		return false
	}
	if hasSkip(wizard.FieldTitle) {
		t.Error("title must not be skippable")
	}
	if !hasSkip(wizard.FieldSubject) {
		t.Error("subject must be skippable")
	}

	rows := fieldOptions(wizard.FieldSubject, []string{"a", "b", "c"})
	if len(rows) != 2 || len(rows[1]) != 1 {
		t.Fatalf("subject rows = %v", rows)
	}
}

func TestShortTitle(t *testing.T) {
	if got := shortTitle("informe final de simulación", 10); got != "Informe f…" {
		t.Fatalf("got %q", got)
	}
	if got := shortTitle("quiz", 10); got != "Quiz" {
		t.Fatalf("got %q", got)
	}
}

func TestInputMatchers(t *testing.T) {
	if !isSkipInput(btnSkip) || !isSkipInput("omitir") || isSkipInput("alta") {
		t.Error("isSkipInput")
	}
	if !isBackInput("Atrás") || !isCancelInput(btnCancel) {
		t.Error("navigation matchers")
	}
}
