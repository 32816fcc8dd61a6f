// Package assistant talks to the language model that turns free text into
// task drafts and writes the daily suggestion. The model is treated as
// unreliable: Service converts every failure into a static message.
package assistant

import (
	"context"
	"time"

	"study-dashboard/internal/model"
)

// Intent is what the model thinks the user wants.
type Intent string

const (
	IntentAddTask Intent = "ADD_TASK"
	IntentQuery   Intent = "QUERY"
	IntentChat    Intent = "CHAT"
	IntentUnknown Intent = "UNKNOWN"
)

// TaskDraft holds the task-like fields the model extracted. Everything is
// optional; DueDate is "YYYY-MM-DD".
type TaskDraft struct {
	Title       string `json:"title,omitempty"`
	Kind        string `json:"type,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Description string `json:"description,omitempty"`
	Subject     string `json:"subject,omitempty"`
}

// MentoringDraft holds mentoring specific fields.
type MentoringDraft struct {
	Type  string `json:"mentoringType,omitempty"`
	Title string `json:"title,omitempty"`
	Date  string `json:"date,omitempty"`
	Time  string `json:"time,omitempty"`
}

// Reply is the structured answer to free text.
type Reply struct {
	Intent    Intent          `json:"intent"`
	Task      *TaskDraft      `json:"taskDetails,omitempty"`
	Mentoring *MentoringDraft `json:"mentoringDetails,omitempty"`
	Message   string          `json:"responseMessage"`
	// Fallback is set when Message is a static text because the model
	// could not be used.
	Fallback bool `json:"-"`
}

// SuggestionCategory tags the daily suggestion.
type SuggestionCategory string

const (
	CategoryStudy    SuggestionCategory = "STUDY"
	CategoryRest     SuggestionCategory = "REST"
	CategoryPriority SuggestionCategory = "PRIORITY"
	CategoryGeneral  SuggestionCategory = "GENERAL"
)

// Suggestion is a short piece of daily advice.
type Suggestion struct {
	Text     string             `json:"suggestionText"`
	Category SuggestionCategory `json:"category"`
	Fallback bool               `json:"-"`
}

// Snapshot is what the model sees when writing a suggestion.
type Snapshot struct {
	Now     time.Time
	Pending []model.Task
	Classes []model.ClassSession
}

// Client is a language model backend.
type Client interface {
	ParseInput(ctx context.Context, input string, now time.Time) (*Reply, error)
	Suggest(ctx context.Context, snap Snapshot) (*Suggestion, error)
}
