// Package schedule answers questions about the static weekly class timetable.
package schedule

import (
	"sort"
	"time"

	"study-dashboard/internal/model"
)

var dayNames = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// SessionsForDay returns the sessions held on day, earliest first.
// A day without classes yields an empty slice.
func SessionsForDay(sessions []model.ClassSession, day time.Weekday) []model.ClassSession {
	out := make([]model.ClassSession, 0, len(sessions))
	for _, s := range sessions {
		if s.DayOfWeek == day {
			out = append(out, s)
		}
	}
	// "HH:MM" is fixed width, so string order is chronological order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// Tomorrow returns the weekday after day, wrapping Saturday to Sunday.
func Tomorrow(day time.Weekday) time.Weekday {
	return (day + 1) % 7
}

// Week returns the sessions of every weekday, indexed by time.Weekday.
func Week(sessions []model.ClassSession) [7][]model.ClassSession {
	var week [7][]model.ClassSession
	for d := time.Sunday; d <= time.Saturday; d++ {
		week[d] = SessionsForDay(sessions, d)
	}
	return week
}

// DayName returns the Spanish name of the weekday.
func DayName(day time.Weekday) string {
	return dayNames[day%7]
}
