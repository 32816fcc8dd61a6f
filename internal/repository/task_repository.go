package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"study-dashboard/internal/model"
)

// Slot keys.
const (
	KeyTasks     = "tasks"
	KeyMentoring = "mentoring"
	KeyHistory   = "history"
)

// TaskRepository stores the whole task list in one slot.
type TaskRepository struct {
	slots *SlotRepository
}

func NewTaskRepository(slots *SlotRepository) *TaskRepository {
	return &TaskRepository{slots: slots}
}

func (r *TaskRepository) Load(ctx context.Context) ([]model.Task, error) {
	return loadJSON[model.Task](ctx, r.slots, KeyTasks)
}

func (r *TaskRepository) Save(ctx context.Context, tasks []model.Task) error {
	return saveJSON(ctx, r.slots, KeyTasks, tasks)
}

// MentoringRepository stores the mentoring topics in one slot.
type MentoringRepository struct {
	slots *SlotRepository
}

func NewMentoringRepository(slots *SlotRepository) *MentoringRepository {
	return &MentoringRepository{slots: slots}
}

func (r *MentoringRepository) Load(ctx context.Context) ([]model.MentoringTopic, error) {
	return loadJSON[model.MentoringTopic](ctx, r.slots, KeyMentoring)
}

func (r *MentoringRepository) Save(ctx context.Context, topics []model.MentoringTopic) error {
	return saveJSON(ctx, r.slots, KeyMentoring, topics)
}

// HistoryRepository stores the completed-activity log in one slot.
type HistoryRepository struct {
	slots *SlotRepository
}

func NewHistoryRepository(slots *SlotRepository) *HistoryRepository {
	return &HistoryRepository{slots: slots}
}

func (r *HistoryRepository) Load(ctx context.Context) ([]model.HistoryItem, error) {
	return loadJSON[model.HistoryItem](ctx, r.slots, KeyHistory)
}

func (r *HistoryRepository) Save(ctx context.Context, items []model.HistoryItem) error {
	return saveJSON(ctx, r.slots, KeyHistory, items)
}

func loadJSON[T any](ctx context.Context, slots *SlotRepository, key string) ([]T, error) {
	raw, ok, err := slots.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func saveJSON[T any](ctx context.Context, slots *SlotRepository, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return slots.Put(ctx, key, raw)
}
