package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockClient is a deterministic Client for local mode and tests. Requests
// containing "tarea" become ADD_TASK replies.
type MockClient struct {
	Err error
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ParseInput(_ context.Context, input string, now time.Time) (*Reply, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if strings.Contains(strings.ToLower(input), "tarea") {
		return &Reply{
			Intent:  IntentAddTask,
			Task:    &TaskDraft{Title: strings.TrimSpace(input), DueDate: now.Format("2006-01-02")},
			Message: "Listo, agregué la tarea.",
		}, nil
	}
	return &Reply{Intent: IntentChat, Message: fmt.Sprintf("Te escucho. Dijiste %q.", input)}, nil
}

func (m *MockClient) Suggest(_ context.Context, snap Snapshot) (*Suggestion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(snap.Pending) > 3 {
		return &Suggestion{Text: "Empieza por la tarea de mayor prioridad.", Category: CategoryPriority}, nil
	}
	return &Suggestion{Text: "Día ligero: adelanta material de monitoría.", Category: CategoryStudy}, nil
}
