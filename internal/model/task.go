package model

import (
	"strings"
	"time"
)

// TaskKind tells which area of life a task belongs to.
type TaskKind string

const (
	KindAcademic  TaskKind = "ACADEMIC"
	KindPersonal  TaskKind = "PERSONAL"
	KindMentoring TaskKind = "MENTORING"
	KindOther     TaskKind = "OTHER"
)

// ParseTaskKind accepts the canonical kind names in any case.
func ParseTaskKind(raw string) (TaskKind, bool) {
	switch k := TaskKind(strings.ToUpper(strings.TrimSpace(raw))); k {
	case KindAcademic, KindPersonal, KindMentoring, KindOther:
		return k, true
	default:
		return "", false
	}
}

// Priority of a task. Rank gives the sort weight.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Rank returns 3 for high, 2 for medium and 1 for low. Unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ParsePriority accepts the canonical names as well as the Spanish labels
// shown in the bot keyboards.
func ParsePriority(raw string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high", "alta":
		return PriorityHigh, true
	case "medium", "media":
		return PriorityMedium, true
	case "low", "baja":
		return PriorityLow, true
	default:
		return "", false
	}
}

// Task represents a single item on the dashboard.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Kind        TaskKind  `json:"kind"`
	Priority    Priority  `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	Completed   bool      `json:"completed"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject,omitempty"`
}
