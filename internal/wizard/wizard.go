// Package wizard implements the structured-input capture flow: the user
// starts an entry, picks a record kind and fills that kind's form one field
// at a time. A successful submission emits a typed Payload and resets the
// machine to Idle.
package wizard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"study-dashboard/internal/model"
)

var (
	ErrInvalidTransition = errors.New("wizard: invalid transition")
	ErrBusy              = errors.New("wizard: a previous submission is still pending")
	ErrIncomplete        = errors.New("wizard: mandatory fields missing")
	ErrInvalidValue      = errors.New("wizard: invalid value")
	ErrRequired          = errors.New("wizard: field cannot be skipped")
)

// State of the capture flow.
type State int

const (
	Idle State = iota
	SelectingType
	FormTask
	FormMeeting
	FormQuestion
	FormMentoring
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SelectingType:
		return "selecting_type"
	case FormTask:
		return "form_task"
	case FormMeeting:
		return "form_meeting"
	case FormQuestion:
		return "form_question"
	case FormMentoring:
		return "form_mentoring"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// InForm reports whether s is one of the per-kind form states.
func (s State) InForm() bool {
	return s >= FormTask && s <= FormMentoring
}

// Field names a form input.
type Field string

const (
	FieldTitle    Field = "title"
	FieldSubject  Field = "subject"
	FieldPriority Field = "priority"
	FieldDate     Field = "date"
	FieldTime     Field = "time"
	FieldSubtype  Field = "mentoringType"
	FieldQuestion Field = "question"
)

var formFor = map[Kind]State{
	KindTask:      FormTask,
	KindMeeting:   FormMeeting,
	KindQuestion:  FormQuestion,
	KindMentoring: FormMentoring,
}

// steps is the order fields are asked in.
var steps = map[State][]Field{
	FormTask:      {FieldTitle, FieldSubject, FieldPriority, FieldDate},
	FormMeeting:   {FieldTitle, FieldDate, FieldTime},
	FormQuestion:  {FieldQuestion},
	FormMentoring: {FieldSubtype, FieldTitle, FieldDate, FieldTime},
}

var optional = map[State]map[Field]bool{
	FormTask:      {FieldSubject: true, FieldPriority: true, FieldDate: true},
	FormMentoring: {FieldSubtype: true},
}

// IncompleteError lists the mandatory fields that are still empty.
type IncompleteError struct {
	Kind   Kind
	Fields []Field
}

func (e *IncompleteError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("wizard: %s is missing %s", strings.ToLower(string(e.Kind)), strings.Join(names, ", "))
}

func (e *IncompleteError) Is(target error) bool { return target == ErrIncomplete }

type form struct {
	values map[Field]string
	step   int
}

// Machine is the capture state machine. The zero value is not usable; call
// New.
type Machine struct {
	state    State
	form     form
	validate *validator.Validate
}

func New() *Machine {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	m := &Machine{validate: v}
	m.reset(Idle)
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Kind returns the record kind of the current form, or "" outside forms.
func (m *Machine) Kind() Kind {
	for k, s := range formFor {
		if s == m.state {
			return k
		}
	}
	return ""
}

// Begin starts an entry: Idle -> SelectingType.
func (m *Machine) Begin() error {
	if m.state != Idle {
		return fmt.Errorf("%w: begin from %s", ErrInvalidTransition, m.state)
	}
	m.state = SelectingType
	return nil
}

// Choose picks the record kind: SelectingType -> Form*.
func (m *Machine) Choose(kind Kind) error {
	if m.state != SelectingType {
		return fmt.Errorf("%w: choose from %s", ErrInvalidTransition, m.state)
	}
	next, ok := formFor[kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidValue, kind)
	}
	m.reset(next)
	return nil
}

// Back returns from a form to the type selection, dropping what was typed.
func (m *Machine) Back() error {
	if !m.state.InForm() {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, m.state)
	}
	m.reset(SelectingType)
	return nil
}

// Cancel abandons the entry from any state.
func (m *Machine) Cancel() {
	m.reset(Idle)
}

// Field returns the next field to ask for. ok is false outside a form or
// once every field has been answered or skipped.
func (m *Machine) Field() (f Field, ok bool) {
	list := steps[m.state]
	if m.form.step >= len(list) {
		return "", false
	}
	return list[m.form.step], true
}

// Optional reports whether f may be skipped in the current form.
func (m *Machine) Optional(f Field) bool {
	return optional[m.state][f]
}

// Fill answers the current field and moves to the next one. On error the
// machine is left unchanged.
func (m *Machine) Fill(value string) error {
	f, ok := m.Field()
	if !ok {
		return fmt.Errorf("%w: no field pending in %s", ErrInvalidTransition, m.state)
	}
	if err := m.Set(f, value); err != nil {
		return err
	}
	m.form.step++
	return nil
}

// Skip leaves the current optional field empty and moves on.
func (m *Machine) Skip() error {
	f, ok := m.Field()
	if !ok {
		return fmt.Errorf("%w: no field pending in %s", ErrInvalidTransition, m.state)
	}
	if !m.Optional(f) {
		return fmt.Errorf("%w: %s", ErrRequired, f)
	}
	delete(m.form.values, f)
	m.form.step++
	return nil
}

// Set stores a value for any field of the current form, normalizing it.
// An empty value clears the field.
func (m *Machine) Set(f Field, value string) error {
	if !m.state.InForm() {
		return fmt.Errorf("%w: set outside a form", ErrInvalidTransition)
	}
	if !m.has(f) {
		return fmt.Errorf("%w: %s is not part of %s", ErrInvalidValue, f, m.state)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		if !m.Optional(f) {
			return fmt.Errorf("%w: %s", ErrRequired, f)
		}
		delete(m.form.values, f)
		return nil
	}
	normalized, err := normalize(f, value)
	if err != nil {
		return err
	}
	m.form.values[f] = normalized
	return nil
}

// Value returns what has been stored for f.
func (m *Machine) Value(f Field) string {
	return m.form.values[f]
}

// CanSubmit reports whether Submit would succeed right now.
func (m *Machine) CanSubmit(busy bool) bool {
	if busy || !m.state.InForm() {
		return false
	}
	_, err := m.build(time.Now())
	return err == nil
}

// Submit validates the form and emits its payload. now fills the default
// task date. Submission is rejected while busy is set; validation failures
// return an *IncompleteError. Either way the machine keeps its state. On
// success it resets to Idle.
func (m *Machine) Submit(now time.Time, busy bool) (Payload, error) {
	if !m.state.InForm() {
		return nil, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, m.state)
	}
	if busy {
		return nil, ErrBusy
	}
	p, err := m.build(now)
	if err != nil {
		return nil, err
	}
	m.reset(Idle)
	return p, nil
}

func (m *Machine) build(now time.Time) (Payload, error) {
	v := m.form.values
	var p Payload
	switch m.state {
	case FormTask:
		priority := model.PriorityMedium
		if raw, ok := v[FieldPriority]; ok {
			priority = model.Priority(raw)
		}
		date := now
		if raw, ok := v[FieldDate]; ok {
			parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
			if err != nil {
				return nil, fmt.Errorf("%w: date %q", ErrInvalidValue, raw)
			}
			date = parsed
		}
		p = TaskPayload{Title: v[FieldTitle], Subject: v[FieldSubject], Priority: priority, Date: date}
	case FormMeeting:
		p = MeetingPayload{Title: v[FieldTitle], Date: v[FieldDate], Time: v[FieldTime]}
	case FormMentoring:
		subtype := SubtypeTopic
		if raw, ok := v[FieldSubtype]; ok {
			subtype = MentoringSubtype(raw)
		}
		p = MentoringPayload{Subtype: subtype, Title: v[FieldTitle], Date: v[FieldDate], Time: v[FieldTime]}
	case FormQuestion:
		p = QuestionPayload{Question: v[FieldQuestion]}
	}

	if err := m.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			incomplete := &IncompleteError{Kind: p.Kind()}
			for _, fe := range verrs {
				incomplete.Fields = append(incomplete.Fields, Field(fe.Field()))
			}
			return nil, incomplete
		}
		return nil, fmt.Errorf("validate %s: %w", p.Kind(), err)
	}
	return p, nil
}

func (m *Machine) has(f Field) bool {
	for _, s := range steps[m.state] {
		if s == f {
			return true
		}
	}
	return false
}

func (m *Machine) reset(s State) {
	m.state = s
	m.form = form{values: make(map[Field]string)}
}

func normalize(f Field, value string) (string, error) {
	switch f {
	case FieldPriority:
		p, ok := model.ParsePriority(value)
		if !ok {
			return "", fmt.Errorf("%w: priority %q", ErrInvalidValue, value)
		}
		return string(p), nil
	case FieldDate:
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return "", fmt.Errorf("%w: date %q, expected YYYY-MM-DD", ErrInvalidValue, value)
		}
		return t.Format("2006-01-02"), nil
	case FieldTime:
		t, err := time.Parse("15:04", value)
		if err != nil {
			return "", fmt.Errorf("%w: time %q, expected HH:MM", ErrInvalidValue, value)
		}
		return t.Format("15:04"), nil
	case FieldSubtype:
		s, ok := ParseSubtype(value)
		if !ok {
			return "", fmt.Errorf("%w: mentoring type %q", ErrInvalidValue, value)
		}
		return string(s), nil
	default:
		return value, nil
	}
}
