package wizard

import (
	"fmt"
	"strings"
	"time"

	"study-dashboard/internal/model"
)

// Kind is the record type the user picked in the type selection step.
type Kind string

const (
	KindTask      Kind = "TASK"
	KindMeeting   Kind = "MEETING"
	KindQuestion  Kind = "QUESTION"
	KindMentoring Kind = "MENTORING_ENTRY"
)

// MentoringSubtype says what a mentoring entry schedules.
type MentoringSubtype string

const (
	SubtypeTopic    MentoringSubtype = "TOPIC"
	SubtypeDate     MentoringSubtype = "DATE"
	SubtypeWorkshop MentoringSubtype = "WORKSHOP"
)

// ParseSubtype accepts canonical and Spanish names.
func ParseSubtype(raw string) (MentoringSubtype, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "topic", "tema":
		return SubtypeTopic, true
	case "date", "fecha", "sesion", "sesión":
		return SubtypeDate, true
	case "workshop", "taller":
		return SubtypeWorkshop, true
	default:
		return "", false
	}
}

// Payload is what a successful submission emits. The concrete type is one
// of TaskPayload, MeetingPayload, MentoringPayload or QuestionPayload.
type Payload interface {
	Kind() Kind
}

// TaskPayload describes a new task.
type TaskPayload struct {
	Title    string         `json:"title" validate:"required"`
	Subject  string         `json:"subject,omitempty"`
	Priority model.Priority `json:"priority" validate:"required,oneof=HIGH MEDIUM LOW"`
	Date     time.Time      `json:"date"`
}

func (TaskPayload) Kind() Kind { return KindTask }

// MeetingPayload describes a meeting at a given date and time.
type MeetingPayload struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Time  string `json:"time" validate:"required,datetime=15:04"`
}

func (MeetingPayload) Kind() Kind { return KindMeeting }

// At combines Date and Time in loc.
func (p MeetingPayload) At(loc *time.Location) (time.Time, error) {
	return combine(p.Date, p.Time, loc)
}

// MentoringPayload describes a mentoring topic, session date or workshop.
type MentoringPayload struct {
	Subtype MentoringSubtype `json:"mentoringType" validate:"required,oneof=TOPIC DATE WORKSHOP"`
	Title   string           `json:"title" validate:"required"`
	Date    string           `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string           `json:"time" validate:"required,datetime=15:04"`
}

func (MentoringPayload) Kind() Kind { return KindMentoring }

// At combines Date and Time in loc.
func (p MentoringPayload) At(loc *time.Location) (time.Time, error) {
	return combine(p.Date, p.Time, loc)
}

// QuestionPayload is a free question for the assistant.
type QuestionPayload struct {
	Question string `json:"question" validate:"required"`
}

func (QuestionPayload) Kind() Kind { return KindQuestion }

func combine(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %s: %w", date, clock, err)
	}
	return t, nil
}
