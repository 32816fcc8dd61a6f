package model

// MentoringStatus tracks a tutoring topic through preparation.
type MentoringStatus string

const (
	MentoringPrepared   MentoringStatus = "PREPARED"
	MentoringInProgress MentoringStatus = "IN_PROGRESS"
	MentoringCompleted  MentoringStatus = "COMPLETED"
)

// Next returns the following status in the cycle
// prepared -> in progress -> completed -> prepared.
// Unknown values restart at prepared.
func (s MentoringStatus) Next() MentoringStatus {
	switch s {
	case MentoringPrepared:
		return MentoringInProgress
	case MentoringInProgress:
		return MentoringCompleted
	default:
		return MentoringPrepared
	}
}

// MentoringTopic is a subject prepared for a tutoring session.
type MentoringTopic struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Status   MentoringStatus `json:"status"`
	Students string          `json:"students,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// Advance returns a copy of the topic moved to the next status.
func Advance(topic MentoringTopic) MentoringTopic {
	topic.Status = topic.Status.Next()
	return topic
}
