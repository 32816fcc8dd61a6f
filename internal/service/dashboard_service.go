package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"study-dashboard/internal/assistant"
	"study-dashboard/internal/logger"
	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
	"study-dashboard/internal/repository"
	"study-dashboard/internal/schedule"
	"study-dashboard/internal/wizard"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTopicNotFound = errors.New("mentoring topic not found")
	ErrTitleRequired = errors.New("title is required")
)

const defaultTaskTitle = "Nueva Tarea"

// Outcome describes what a submission produced. At most one of Task and
// Topic is set; Message is always the text to show.
type Outcome struct {
	Task     *model.Task
	Topic    *model.MentoringTopic
	Message  string
	Fallback bool
}

// DashboardService owns the dashboard state. Callers get copies and change
// state only through its methods.
type DashboardService struct {
	mu    sync.Mutex
	state planner.State

	tasks     *repository.TaskRepository
	topics    *repository.MentoringRepository
	history   *repository.HistoryRepository
	catalog   *schedule.Catalog
	assistant *assistant.Service
	loc       *time.Location
	log       *logger.Logger

	newID func() string
}

func NewDashboardService(
	tasks *repository.TaskRepository,
	topics *repository.MentoringRepository,
	history *repository.HistoryRepository,
	catalog *schedule.Catalog,
	assist *assistant.Service,
	loc *time.Location,
	log *logger.Logger,
) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	if assist == nil {
		assist = assistant.NewService(nil, nil, 0, log)
	}
	return &DashboardService{
		state:     planner.State{Tasks: []model.Task{}, Topics: []model.MentoringTopic{}, History: []model.HistoryItem{}},
		tasks:     tasks,
		topics:    topics,
		history:   history,
		catalog:   catalog,
		assistant: assist,
		loc:       loc,
		log:       log,
		newID:     uuid.NewString,
	}
}

// Load reads every collection once. A collection that cannot be read or
// decoded starts empty and is overwritten on its next change.
func (s *DashboardService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tasks, err := s.tasks.Load(ctx); err != nil {
		s.log.WithError(err).Warnw("tasks unreadable, starting empty")
	} else {
		s.state.Tasks = tasks
	}
	if topics, err := s.topics.Load(ctx); err != nil {
		s.log.WithError(err).Warnw("mentoring topics unreadable, starting empty")
	} else {
		s.state.Topics = topics
	}
	if items, err := s.history.Load(ctx); err != nil {
		s.log.WithError(err).Warnw("history unreadable, starting empty")
	} else {
		s.state.History = items
	}
	s.log.Infow("dashboard loaded",
		"tasks", len(s.state.Tasks),
		"topics", len(s.state.Topics),
		"history", len(s.state.History),
	)
}

func (s *DashboardService) Catalog() *schedule.Catalog { return s.catalog }

func (s *DashboardService) Location() *time.Location { return s.loc }

func (s *DashboardService) AssistantBusy() bool { return s.assistant.Busy() }

// Submit turns a wizard payload into a task, a mentoring topic or an
// assistant answer. The only assistant error passed through is
// assistant.ErrBusy.
func (s *DashboardService) Submit(ctx context.Context, p wizard.Payload, now time.Time) (Outcome, error) {
	switch p := p.(type) {
	case wizard.TaskPayload:
		task := model.Task{
			Title:       p.Title,
			Kind:        model.KindOther,
			Priority:    p.Priority,
			DueDate:     p.Date,
			Description: p.Title,
			Subject:     p.Subject,
		}
		if p.Subject != "" {
			task.Kind = model.KindAcademic
		}
		created, err := s.AddTask(ctx, task, now)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Task: &created, Message: "Tarea agregada correctamente."}, nil

	case wizard.MeetingPayload:
		due, err := p.At(s.loc)
		if err != nil {
			return Outcome{}, fmt.Errorf("meeting date: %w", err)
		}
		created, err := s.AddTask(ctx, model.Task{
			Title:    fmt.Sprintf("Reunión: %s (%s)", p.Title, p.Time),
			Kind:     model.KindPersonal,
			Priority: model.PriorityHigh,
			DueDate:  due,
		}, now)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Task: &created, Message: "Reunión agendada."}, nil

	case wizard.MentoringPayload:
		if p.Subtype == wizard.SubtypeTopic {
			topic, err := s.AddTopic(ctx, p.Title, "", "")
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Topic: &topic, Message: "Tema de monitoría agregado."}, nil
		}
		due, err := p.At(s.loc)
		if err != nil {
			return Outcome{}, fmt.Errorf("mentoring date: %w", err)
		}
		created, err := s.AddTask(ctx, model.Task{
			Title:    p.Title,
			Kind:     model.KindMentoring,
			Priority: model.PriorityHigh,
			DueDate:  due,
		}, now)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Task: &created, Message: "Actividad de monitoría agendada."}, nil

	case wizard.QuestionPayload:
		reply, err := s.assistant.Ask(ctx, p.Question, now)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Message: reply.Message, Fallback: reply.Fallback}, nil

	default:
		return Outcome{}, fmt.Errorf("unsupported payload %T", p)
	}
}

// Ask forwards free text to the assistant. An ADD_TASK reply with a task
// draft creates the task.
func (s *DashboardService) Ask(ctx context.Context, text string, now time.Time) (Outcome, error) {
	reply, err := s.assistant.Ask(ctx, text, now)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Message: reply.Message, Fallback: reply.Fallback}
	if reply.Intent != assistant.IntentAddTask || reply.Task == nil {
		return out, nil
	}
	task, err := s.AddFromDraft(ctx, *reply.Task, text, now)
	if err != nil {
		return Outcome{}, err
	}
	out.Task = &task
	return out, nil
}

// AddFromDraft creates a task from a model draft. Missing or unknown
// values fall back to the defaults: fallbackTitle, OTHER (ACADEMIC when a
// known subject is given), MEDIUM and now.
func (s *DashboardService) AddFromDraft(ctx context.Context, d assistant.TaskDraft, fallbackTitle string, now time.Time) (model.Task, error) {
	task := model.Task{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
	}
	if task.Title == "" {
		task.Title = strings.TrimSpace(fallbackTitle)
	}
	if subject := strings.TrimSpace(d.Subject); subject != "" && s.catalog != nil && s.catalog.HasSubject(subject) {
		task.Subject = subject
	}
	if kind, ok := model.ParseTaskKind(d.Kind); ok {
		task.Kind = kind
	} else if task.Subject != "" {
		task.Kind = model.KindAcademic
	}
	if p, ok := model.ParsePriority(d.Priority); ok {
		task.Priority = p
	}
	if d.DueDate != "" {
		if due, err := time.ParseInLocation("2006-01-02", d.DueDate, s.loc); err == nil {
			task.DueDate = due
		} else {
			s.log.WithError(err).Debugw("ignoring draft due date", "raw", d.DueDate)
		}
	}
	return s.AddTask(ctx, task, now)
}

// AddTask assigns a fresh id, fills the defaults and stores the task.
func (s *DashboardService) AddTask(ctx context.Context, task model.Task, now time.Time) (model.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		task.Title = defaultTaskTitle
	}
	if task.Kind == "" {
		task.Kind = model.KindOther
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.DueDate.IsZero() {
		task.DueDate = now
	}
	task.ID = s.newID()
	task.Completed = false

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = planner.Reduce(s.state, planner.AddTask{Task: task})
	if err := s.tasks.Save(ctx, s.state.Tasks); err != nil {
		return task, fmt.Errorf("save tasks: %w", err)
	}
	s.log.Infow("task added", "id", task.ID, "kind", task.Kind, "priority", task.Priority)
	return task, nil
}

// Toggle flips a task's completion. Completing a task records a history
// item; reopening it leaves the record in place.
func (s *DashboardService) Toggle(ctx context.Context, id string, now time.Time) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.FindTask(id); !ok {
		return model.Task{}, ErrTaskNotFound
	}
	s.state = planner.Reduce(s.state, planner.ToggleTask{ID: id})
	task, _ := s.state.FindTask(id)

	if err := s.tasks.Save(ctx, s.state.Tasks); err != nil {
		return task, fmt.Errorf("save tasks: %w", err)
	}
	if task.Completed {
		item := model.HistoryItem{
			ID:          s.newID(),
			Title:       task.Title,
			Category:    model.HistoryCategoryFor(task.Kind),
			CompletedAt: now,
			Details:     task.Subject,
		}
		s.state = planner.Reduce(s.state, planner.RecordHistory{Item: item})
		if err := s.history.Save(ctx, s.state.History); err != nil {
			return task, fmt.Errorf("save history: %w", err)
		}
	}
	s.log.Infow("task toggled", "id", id, "completed", task.Completed)
	return task, nil
}

// AddTopic stores a new mentoring topic in PREPARED.
func (s *DashboardService) AddTopic(ctx context.Context, title, students, notes string) (model.MentoringTopic, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.MentoringTopic{}, ErrTitleRequired
	}
	topic := model.MentoringTopic{
		ID:       s.newID(),
		Title:    title,
		Status:   model.MentoringPrepared,
		Students: strings.TrimSpace(students),
		Notes:    strings.TrimSpace(notes),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = planner.Reduce(s.state, planner.AddTopic{Topic: topic})
	if err := s.topics.Save(ctx, s.state.Topics); err != nil {
		return topic, fmt.Errorf("save mentoring: %w", err)
	}
	s.log.Infow("mentoring topic added", "id", topic.ID)
	return topic, nil
}

// AdvanceTopic moves a topic to its next status.
func (s *DashboardService) AdvanceTopic(ctx context.Context, id string) (model.MentoringTopic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.FindTopic(id); !ok {
		return model.MentoringTopic{}, ErrTopicNotFound
	}
	s.state = planner.Reduce(s.state, planner.AdvanceTopic{ID: id})
	topic, _ := s.state.FindTopic(id)
	if err := s.topics.Save(ctx, s.state.Topics); err != nil {
		return topic, fmt.Errorf("save mentoring: %w", err)
	}
	s.log.Infow("mentoring topic advanced", "id", id, "status", topic.Status)
	return topic, nil
}

// Task returns a copy of the task with the given id.
func (s *DashboardService) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.FindTask(id)
}

func (s *DashboardService) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.state.Tasks...)
}

func (s *DashboardService) Topics() []model.MentoringTopic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.MentoringTopic(nil), s.state.Topics...)
}

// Visible applies the task list view.
func (s *DashboardService) Visible(view planner.View, subFilter string) []model.Task {
	return planner.VisibleTasks(s.Tasks(), view, subFilter)
}

// Counts summarizes the pending tasks and today's classes.
func (s *DashboardService) Counts(now time.Time) planner.Counts {
	return planner.Summarize(s.Tasks(), s.sessions(), now.In(s.loc).Weekday())
}

// Weekly aggregates the trailing week of history.
func (s *DashboardService) Weekly(now time.Time) planner.WeeklyReport {
	s.mu.Lock()
	items := append([]model.HistoryItem(nil), s.state.History...)
	s.mu.Unlock()
	return planner.Weekly(items, now)
}

// ClassesOn returns the sessions held on day, in start order.
func (s *DashboardService) ClassesOn(day time.Weekday) []model.ClassSession {
	return schedule.SessionsForDay(s.sessions(), day)
}

// Snapshot is the input of the daily suggestion.
func (s *DashboardService) Snapshot(now time.Time) assistant.Snapshot {
	return assistant.Snapshot{
		Now:     now,
		Pending: planner.Pending(s.Tasks()),
		Classes: s.ClassesOn(now.In(s.loc).Weekday()),
	}
}

// Suggest fetches the daily suggestion. While another suggestion is in
// flight the placeholder text is returned.
func (s *DashboardService) Suggest(ctx context.Context, now time.Time) assistant.Suggestion {
	sug, err := s.assistant.Suggest(ctx, s.Snapshot(now))
	if err != nil {
		return assistant.Suggestion{Text: assistant.MsgSuggestionPending, Category: assistant.CategoryGeneral, Fallback: true}
	}
	return sug
}

func (s *DashboardService) sessions() []model.ClassSession {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Sessions
}
