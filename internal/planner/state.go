package planner

import "study-dashboard/internal/model"

// State is everything the dashboard owns. Values are replaced, never
// mutated in place, so a State handed out stays valid.
type State struct {
	Tasks   []model.Task
	Topics  []model.MentoringTopic
	History []model.HistoryItem
}

// Action is a mutation request understood by Reduce.
type Action interface {
	apply(State) State
}

// Reduce returns the state after applying action. The input is never
// modified.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

// AddTask appends a task.
type AddTask struct{ Task model.Task }

func (a AddTask) apply(s State) State {
	s.Tasks = append(clone(s.Tasks), a.Task)
	return s
}

// ToggleTask flips the completed flag of the task with ID. Other tasks and
// fields are left alone; an unknown ID is a no-op.
type ToggleTask struct{ ID string }

func (a ToggleTask) apply(s State) State {
	for i, t := range s.Tasks {
		if t.ID != a.ID {
			continue
		}
		tasks := clone(s.Tasks)
		tasks[i].Completed = !t.Completed
		s.Tasks = tasks
		return s
	}
	return s
}

// AddTopic appends a mentoring topic.
type AddTopic struct{ Topic model.MentoringTopic }

func (a AddTopic) apply(s State) State {
	s.Topics = append(clone(s.Topics), a.Topic)
	return s
}

// AdvanceTopic moves the topic with ID to its next status.
type AdvanceTopic struct{ ID string }

func (a AdvanceTopic) apply(s State) State {
	for i, t := range s.Topics {
		if t.ID != a.ID {
			continue
		}
		topics := clone(s.Topics)
		topics[i] = model.Advance(t)
		s.Topics = topics
		return s
	}
	return s
}

// RecordHistory appends a completed-activity record.
type RecordHistory struct{ Item model.HistoryItem }

func (a RecordHistory) apply(s State) State {
	s.History = append(clone(s.History), a.Item)
	return s
}

// FindTask returns the task with id.
func (s State) FindTask(id string) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// FindTopic returns the mentoring topic with id.
func (s State) FindTopic(id string) (model.MentoringTopic, bool) {
	for _, t := range s.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return model.MentoringTopic{}, false
}

func clone[T any](in []T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return out
}
