package model_test

import (
	"testing"

	"study-dashboard/internal/model"
)

func TestAdvanceCycles(t *testing.T) {
	topic := model.MentoringTopic{ID: "m1", Title: "Varianza", Status: model.MentoringPrepared}
	want := []model.MentoringStatus{
		model.MentoringInProgress,
		model.MentoringCompleted,
		model.MentoringPrepared,
	}
	for _, w := range want {
		next := model.Advance(topic)
		if next.Status != w {
			t.Fatalf("Advance(%s) = %s, want %s", topic.Status, next.Status, w)
		}
		if next.ID != topic.ID || next.Title != topic.Title {
			t.Fatalf("Advance changed other fields: %+v", next)
		}
		topic = next
	}
}

func TestAdvanceUnknownStatusRestarts(t *testing.T) {
	got := model.Advance(model.MentoringTopic{Status: "ARCHIVED"})
	if got.Status != model.MentoringPrepared {
		t.Fatalf("status = %s, want PREPARED", got.Status)
	}
}

func TestHistoryCategoryFor(t *testing.T) {
	cases := map[model.TaskKind]model.HistoryCategory{
		model.KindAcademic:  model.HistoryAcademic,
		model.KindMentoring: model.HistoryMentoring,
		model.KindPersonal:  model.HistoryPersonal,
		model.KindOther:     model.HistoryPersonal,
	}
	for kind, want := range cases {
		if got := model.HistoryCategoryFor(kind); got != want {
			t.Errorf("HistoryCategoryFor(%s) = %s, want %s", kind, got, want)
		}
	}
}

func TestParsePriorityAndKind(t *testing.T) {
	if p, ok := model.ParsePriority(" Alta "); !ok || p != model.PriorityHigh {
		t.Errorf("ParsePriority(Alta) = %s, %v", p, ok)
	}
	if _, ok := model.ParsePriority("urgent"); ok {
		t.Error("unknown priority accepted")
	}
	if model.PriorityHigh.Rank() <= model.PriorityMedium.Rank() || model.PriorityLow.Rank() != 1 {
		t.Error("rank order broken")
	}
	if k, ok := model.ParseTaskKind("mentoring"); !ok || k != model.KindMentoring {
		t.Errorf("ParseTaskKind(mentoring) = %s, %v", k, ok)
	}
	if _, ok := model.ParseTaskKind("chores"); ok {
		t.Error("unknown kind accepted")
	}
}
