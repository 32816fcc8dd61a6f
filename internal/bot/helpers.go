package bot

import (
	"errors"
	"strings"

	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
)

const shortIDLen = 8

var (
	errNoSuchTask  = errors.New("no task matches the id")
	errAmbiguousID = errors.New("id prefix matches several tasks")
)

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// resolveTaskID accepts a full id or an unambiguous prefix of one.
func resolveTaskID(tasks []model.Task, raw string) (string, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", errNoSuchTask
	}
	var matches []string
	for _, t := range tasks {
		id := strings.ToLower(t.ID)
		if id == raw {
			return t.ID, nil
		}
		if strings.HasPrefix(id, raw) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", errNoSuchTask
	case 1:
		return matches[0], nil
	default:
		return "", errAmbiguousID
	}
}

// parseListArgs reads "/tareas [view] [filter]". A leading word that is
// not a view is taken as the filter: a priority selects the priority view,
// anything else a subject.
func parseListArgs(args string) (planner.View, string) {
	args = strings.TrimSpace(args)
	if args == "" {
		return planner.ViewPriority, ""
	}
	first, rest, _ := strings.Cut(args, " ")
	rest = strings.TrimSpace(rest)

	view, ok := planner.ParseView(first)
	if !ok {
		view, rest = planner.ViewSubject, args
		if _, isPriority := model.ParsePriority(args); isPriority {
			view = planner.ViewPriority
		}
	}
	if view == planner.ViewPriority {
		if p, ok := model.ParsePriority(rest); ok {
			rest = string(p)
		}
	}
	return view, rest
}

// parseCallback splits callback data into its prefix (with the colon) and
// value.
func parseCallback(data string) (string, string) {
	prefix, value, ok := strings.Cut(data, ":")
	if !ok {
		return "", data
	}
	return prefix + ":", value
}
