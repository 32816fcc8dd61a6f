package planner_test

import (
	"testing"

	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
)

func TestToggleFlipsOnlyTarget(t *testing.T) {
	before := planner.State{Tasks: sampleTasks()}
	after := planner.Reduce(before, planner.ToggleTask{ID: "3"})

	for i, task := range after.Tasks {
		orig := before.Tasks[i]
		if task.ID == "3" {
			if task.Completed == orig.Completed {
				t.Fatalf("task 3 was not toggled")
			}
			orig.Completed = task.Completed
		}
		if task != orig {
			t.Fatalf("task %s changed: %+v -> %+v", task.ID, orig, task)
		}
	}
	if before.Tasks[2].Completed {
		t.Fatalf("Reduce modified its input")
	}

	back := planner.Reduce(after, planner.ToggleTask{ID: "3"})
	if back.Tasks[2].Completed {
		t.Fatalf("second toggle should restore the flag")
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	before := planner.State{Tasks: sampleTasks()}
	after := planner.Reduce(before, planner.ToggleTask{ID: "missing"})
	equalIDs(t, after.Tasks, "1", "2", "3", "4", "5", "6")
	for i := range after.Tasks {
		if after.Tasks[i] != before.Tasks[i] {
			t.Fatalf("task %d changed", i)
		}
	}
}

func TestAddTaskDoesNotAliasInput(t *testing.T) {
	base := make([]model.Task, 1, 4)
	base[0] = model.Task{ID: "a"}
	s := planner.State{Tasks: base}

	first := planner.Reduce(s, planner.AddTask{Task: model.Task{ID: "b"}})
	second := planner.Reduce(s, planner.AddTask{Task: model.Task{ID: "c"}})
	if first.Tasks[1].ID != "b" || second.Tasks[1].ID != "c" {
		t.Fatalf("appends share backing storage: %v %v", ids(first.Tasks), ids(second.Tasks))
	}
	if len(s.Tasks) != 1 {
		t.Fatalf("input state grew")
	}
}

func TestTopicLifecycle(t *testing.T) {
	s := planner.Reduce(planner.State{}, planner.AddTopic{Topic: model.MentoringTopic{ID: "t1", Title: "Regresión", Status: model.MentoringPrepared}})
	want := []model.MentoringStatus{model.MentoringInProgress, model.MentoringCompleted, model.MentoringPrepared}
	for _, status := range want {
		s = planner.Reduce(s, planner.AdvanceTopic{ID: "t1"})
		topic, ok := s.FindTopic("t1")
		if !ok || topic.Status != status {
			t.Fatalf("expected %s, got %+v", status, topic)
		}
	}
}

func TestRecordHistory(t *testing.T) {
	s := planner.Reduce(planner.State{}, planner.RecordHistory{Item: model.HistoryItem{ID: "h1"}})
	if len(s.History) != 1 || s.History[0].ID != "h1" {
		t.Fatalf("unexpected history %+v", s.History)
	}
	if got := planner.Reduce(s, nil); len(got.History) != 1 {
		t.Fatalf("nil action must be a no-op")
	}
}
