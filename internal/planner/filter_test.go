package planner_test

import (
	"testing"
	"time"

	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "quiz", Priority: model.PriorityLow, Subject: "Simulación"},
		{ID: "2", Title: "entrega", Priority: model.PriorityHigh, Subject: "Modelos Estadísticos"},
		{ID: "3", Title: "lectura", Priority: model.PriorityMedium, Subject: "Simulación"},
		{ID: "4", Title: "hecha", Priority: model.PriorityHigh, Completed: true, Subject: "Simulación"},
		{ID: "5", Title: "compras", Priority: model.PriorityMedium},
		{ID: "6", Title: "taller", Priority: model.PriorityHigh, Subject: "simulación"},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(t *testing.T, got []model.Task, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("want %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("want %v, got %v", want, g)
		}
	}
}

func TestPriorityViewNoFilter(t *testing.T) {
	got := planner.VisibleTasks(sampleTasks(), planner.ViewPriority, "")
	// Equal priorities keep their input order.
	equalIDs(t, got, "2", "6", "3", "5", "1")
	for i := 1; i < len(got); i++ {
		if got[i-1].Priority.Rank() < got[i].Priority.Rank() {
			t.Fatalf("priority order broken at %d", i)
		}
	}
}

func TestPriorityViewLowThenHigh(t *testing.T) {
	tasks := []model.Task{
		{ID: "low", Priority: model.PriorityLow},
		{ID: "high", Priority: model.PriorityHigh},
	}
	equalIDs(t, planner.VisibleTasks(tasks, planner.ViewPriority, ""), "high", "low")
}

func TestPriorityViewWithFilter(t *testing.T) {
	cases := []struct {
		filter string
		want   []string
	}{
		{"HIGH", []string{"2", "6"}},
		{"MEDIUM", []string{"3", "5"}},
		{"LOW", []string{"1"}},
		{"Simulación", []string{"2", "6", "3", "5", "1"}},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			equalIDs(t, planner.VisibleTasks(sampleTasks(), planner.ViewPriority, tc.filter), tc.want...)
		})
	}
}

func TestSubjectView(t *testing.T) {
	equalIDs(t, planner.VisibleTasks(sampleTasks(), planner.ViewSubject, "Simulación"), "1", "3")
	equalIDs(t, planner.VisibleTasks(sampleTasks(), planner.ViewSubject, ""), "1", "2", "3", "5", "6")
	equalIDs(t, planner.VisibleTasks(sampleTasks(), planner.ViewSubject, "Física"))
}

func TestCalendarViewReturnsPendingUnchanged(t *testing.T) {
	equalIDs(t, planner.VisibleTasks(sampleTasks(), planner.ViewCalendar, "HIGH"), "1", "2", "3", "5", "6")
}

func TestVisibleTasksLeavesInputAlone(t *testing.T) {
	tasks := sampleTasks()
	_ = planner.VisibleTasks(tasks, planner.ViewPriority, "HIGH")
	equalIDs(t, tasks, "1", "2", "3", "4", "5", "6")
}

func TestParseView(t *testing.T) {
	cases := map[string]planner.View{
		"priority": planner.ViewPriority,
		"Materias": planner.ViewSubject,
		"CALENDAR": planner.ViewCalendar,
		"":         planner.ViewPriority,
	}
	for in, want := range cases {
		got, ok := planner.ParseView(in)
		if !ok || got != want {
			t.Errorf("ParseView(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := planner.ParseView("kanban"); ok {
		t.Errorf("expected kanban to be rejected")
	}
}

func TestSummarize(t *testing.T) {
	sessions := []model.ClassSession{
		{ID: "a", DayOfWeek: time.Tuesday, StartTime: "07:00", EndTime: "09:00"},
		{ID: "b", DayOfWeek: time.Tuesday, StartTime: "14:00", EndTime: "16:00"},
		{ID: "c", DayOfWeek: time.Wednesday, StartTime: "11:00", EndTime: "13:00"},
	}
	c := planner.Summarize(sampleTasks(), sessions, time.Tuesday)
	if c.Pending != 5 || c.High != 2 || c.Medium != 2 || c.Low != 1 {
		t.Fatalf("unexpected counts %+v", c)
	}
	if c.ClassesToday != 2 {
		t.Fatalf("expected 2 classes today, got %d", c.ClassesToday)
	}
	if c := planner.Summarize(nil, sessions, time.Sunday); c != (planner.Counts{}) {
		t.Fatalf("expected zero counts, got %+v", c)
	}
}
