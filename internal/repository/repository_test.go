package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"study-dashboard/internal/model"
	"study-dashboard/internal/repository"
)

func openSlots(t *testing.T) *repository.SlotRepository {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "data", "test.db"), nil)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	return repository.NewSlotRepository(db)
}

func TestSlotGetMissing(t *testing.T) {
	slots := openSlots(t)
	_, ok, err := slots.Get(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("missing key reported as present")
	}
}

func TestSlotPutOverwrites(t *testing.T) {
	ctx := context.Background()
	slots := openSlots(t)

	if err := slots.Put(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := slots.Put(ctx, "k", []byte("second")); err != nil {
		t.Fatalf("Put again: %v", err)
	}
	got, ok, err := slots.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != "second" {
		t.Fatalf("value = %q, want second", got)
	}
}

func TestTaskRepositoryEmptyBeforeFirstSave(t *testing.T) {
	repo := repository.NewTaskRepository(openSlots(t))
	tasks, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("Load = %#v, want empty non-nil slice", tasks)
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	slots := openSlots(t)
	tasks := repository.NewTaskRepository(slots)
	topics := repository.NewMentoringRepository(slots)
	history := repository.NewHistoryRepository(slots)

	due := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	if err := tasks.Save(ctx, []model.Task{{ID: "t1", Title: "Informe", Kind: model.KindAcademic, Priority: model.PriorityHigh, DueDate: due}}); err != nil {
		t.Fatalf("save tasks: %v", err)
	}
	if err := topics.Save(ctx, []model.MentoringTopic{{ID: "m1", Title: "Varianza", Status: model.MentoringPrepared}}); err != nil {
		t.Fatalf("save topics: %v", err)
	}

	gotTasks, err := tasks.Load(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(gotTasks) != 1 || gotTasks[0].ID != "t1" || !gotTasks[0].DueDate.Equal(due) {
		t.Fatalf("tasks = %+v", gotTasks)
	}
	gotTopics, err := topics.Load(ctx)
	if err != nil {
		t.Fatalf("load topics: %v", err)
	}
	if len(gotTopics) != 1 || gotTopics[0].Status != model.MentoringPrepared {
		t.Fatalf("topics = %+v", gotTopics)
	}
	gotHistory, err := history.Load(ctx)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(gotHistory) != 0 {
		t.Fatalf("history = %+v, want empty", gotHistory)
	}
}

func TestLoadCorruptSlot(t *testing.T) {
	ctx := context.Background()
	slots := openSlots(t)
	if err := slots.Put(ctx, repository.KeyHistory, []byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := repository.NewHistoryRepository(slots).Load(ctx); err == nil {
		t.Fatal("expected decode error")
	}
}
