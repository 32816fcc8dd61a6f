package model

import "time"

// HistoryCategory groups completed activity for the weekly report.
type HistoryCategory string

const (
	HistoryAcademic  HistoryCategory = "ACADEMIC"
	HistoryMentoring HistoryCategory = "MENTORING"
	HistoryPersonal  HistoryCategory = "PERSONAL"
)

// HistoryCategoryFor maps a task kind onto the history category it counts
// towards.
func HistoryCategoryFor(kind TaskKind) HistoryCategory {
	switch kind {
	case KindAcademic:
		return HistoryAcademic
	case KindMentoring:
		return HistoryMentoring
	default:
		return HistoryPersonal
	}
}

// HistoryItem is an immutable record of something that got done.
type HistoryItem struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    HistoryCategory `json:"category"`
	CompletedAt time.Time       `json:"completedAt"`
	Details     string          `json:"details,omitempty"`
}
