// Package planner derives what the dashboard shows from the task list:
// the visible, ordered subset for the active view, aggregate counts and
// the weekly activity report. Everything here is a pure function over
// in-memory values.
package planner

import (
	"sort"
	"strings"
	"time"

	"study-dashboard/internal/model"
	"study-dashboard/internal/schedule"
)

// View selects how pending tasks are listed.
type View string

const (
	ViewPriority View = "PRIORITY"
	ViewSubject  View = "SUBJECT"
	ViewCalendar View = "CALENDAR"
)

// ParseView accepts the view names case-insensitively, plus the Spanish
// tab labels.
func ParseView(raw string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "priority", "prioridad", "":
		return ViewPriority, true
	case "subject", "materias", "materia":
		return ViewSubject, true
	case "calendar", "horario":
		return ViewCalendar, true
	default:
		return "", false
	}
}

// Pending returns the incomplete tasks in input order.
func Pending(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// VisibleTasks returns the tasks to render for view. An empty subFilter
// means no restriction. Completed tasks are never returned.
//
// The priority view sorts descending by rank and keeps input order between
// equal priorities. The subject view keeps input order. The calendar view
// does not list tasks, so the pending set is returned as is.
func VisibleTasks(tasks []model.Task, view View, subFilter string) []model.Task {
	pending := Pending(tasks)

	switch view {
	case ViewPriority:
		if p := model.Priority(subFilter); p.Rank() > 0 {
			pending = filter(pending, func(t model.Task) bool { return t.Priority == p })
		}
		sort.SliceStable(pending, func(i, j int) bool {
			return pending[i].Priority.Rank() > pending[j].Priority.Rank()
		})
		return pending
	case ViewSubject:
		if subFilter != "" {
			pending = filter(pending, func(t model.Task) bool { return t.Subject == subFilter })
		}
		return pending
	default:
		return pending
	}
}

func filter(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Counts are the summary figures shown above the task list.
type Counts struct {
	Pending      int
	High         int
	Medium       int
	Low          int
	ClassesToday int
}

// Summarize computes the pending and per-priority counts, and the number
// of classes held on today.
func Summarize(tasks []model.Task, sessions []model.ClassSession, today time.Weekday) Counts {
	var c Counts
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		c.Pending++
		switch t.Priority {
		case model.PriorityHigh:
			c.High++
		case model.PriorityMedium:
			c.Medium++
		case model.PriorityLow:
			c.Low++
		}
	}
	c.ClassesToday = len(schedule.SessionsForDay(sessions, today))
	return c
}
