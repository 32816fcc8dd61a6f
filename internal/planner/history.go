package planner

import (
	"sort"
	"time"

	"study-dashboard/internal/model"
)

const (
	historyWindow  = 7 * 24 * time.Hour
	highlightLimit = 8
)

// WeeklyReport summarizes the activity of the trailing seven days.
type WeeklyReport struct {
	Academic      int
	Mentoring     int
	Personal      int
	Effectiveness int
	Highlights    []model.HistoryItem
}

// Total is the number of counted items in the window.
func (r WeeklyReport) Total() int {
	return r.Academic + r.Mentoring + r.Personal
}

// Weekly aggregates the items completed strictly after now minus seven days
// and not after now. The effectiveness score is min(100, 50+5*total), or 0
// for an empty window. Highlights are the eight most recent items.
func Weekly(items []model.HistoryItem, now time.Time) WeeklyReport {
	since := now.Add(-historyWindow)

	window := make([]model.HistoryItem, 0, len(items))
	var r WeeklyReport
	for _, it := range items {
		if !it.CompletedAt.After(since) || it.CompletedAt.After(now) {
			continue
		}
		switch it.Category {
		case model.HistoryAcademic:
			r.Academic++
		case model.HistoryMentoring:
			r.Mentoring++
		case model.HistoryPersonal:
			r.Personal++
		default:
			continue
		}
		window = append(window, it)
	}

	if total := r.Total(); total > 0 {
		r.Effectiveness = min(100, 50+5*total)
	}

	sort.SliceStable(window, func(i, j int) bool {
		return window[i].CompletedAt.After(window[j].CompletedAt)
	})
	if len(window) > highlightLimit {
		window = window[:highlightLimit]
	}
	r.Highlights = window
	return r
}
