package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
	"study-dashboard/internal/schedule"
)

// ReminderService builds the human-readable messages: quick actions and
// the daily report. All output is HTML-escaped for Telegram.
type ReminderService struct {
	dashboard *DashboardService
}

func NewReminderService(dashboard *DashboardService) *ReminderService {
	return &ReminderService{dashboard: dashboard}
}

// TomorrowClasses lists the classes of the day after now.
func (s *ReminderService) TomorrowClasses(now time.Time) string {
	day := schedule.Tomorrow(now.In(s.dashboard.Location()).Weekday())
	name := schedule.DayName(day)
	classes := s.dashboard.ClassesOn(day)
	if len(classes) == 0 {
		return fmt.Sprintf("¡Buenas noticias! Mañana %s no tienes clases programadas.", name)
	}
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		parts = append(parts, fmt.Sprintf("%s (%s)", html.EscapeString(c.Subject), c.StartTime))
	}
	return fmt.Sprintf("Para mañana %s tienes: %s.", name, strings.Join(parts, ", "))
}

// MentoringHours describes the assigned mentoring office hours.
func (s *ReminderService) MentoringHours() string {
	catalog := s.dashboard.Catalog()
	if catalog == nil || len(catalog.MentoringHours) == 0 {
		return "No tienes espacios de monitoría asignados."
	}
	slots := make([]string, 0, len(catalog.MentoringHours))
	for _, h := range catalog.MentoringHours {
		slots = append(slots, fmt.Sprintf("%s de %s a %s", schedule.DayName(h.DayOfWeek), h.StartTime, h.EndTime))
	}
	title := catalog.MentoringHours[0].Subject
	if title == "" {
		title = "Monitoría"
	}
	return fmt.Sprintf("Tus espacios asignados para %s son: %s.", html.EscapeString(title), strings.Join(slots, " y "))
}

// PendingSummary counts the open tasks by priority.
func (s *ReminderService) PendingSummary(now time.Time) string {
	return pendingSummary(s.dashboard.Counts(now))
}

func pendingSummary(c planner.Counts) string {
	if c.Pending == 0 {
		return "¡Todo despejado! No tienes tareas pendientes actualmente."
	}
	return fmt.Sprintf("Resumen de pendientes: %d en total. (%d Alta, %d Media, %d Baja).", c.Pending, c.High, c.Medium, c.Low)
}

// DailyReport is the scheduled morning message: today's classes, the open
// tasks by priority and the assistant's suggestion.
func (s *ReminderService) DailyReport(ctx context.Context, now time.Time) string {
	loc := s.dashboard.Location()
	local := now.In(loc)

	var builder strings.Builder
	builder.WriteString("📋 <b>Resumen del día</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s %s\n\n", schedule.DayName(local.Weekday()), local.Format("02.01.2006")))

	builder.WriteString("🏫 <b>Clases de hoy</b>\n")
	classes := s.dashboard.ClassesOn(local.Weekday())
	if len(classes) == 0 {
		builder.WriteString("— día libre\n")
	} else {
		for _, c := range classes {
			builder.WriteString(FormatSession(c))
		}
	}

	pending := s.dashboard.Visible(planner.ViewPriority, "")
	sortByPriorityThenDue(pending)

	builder.WriteString("\n🔥 <b>Tareas pendientes</b>\n")
	if len(pending) == 0 {
		builder.WriteString("— no hay tareas abiertas\n")
	} else {
		for _, task := range pending {
			builder.WriteString(FormatTask(task, local))
		}
	}

	sug := s.dashboard.Suggest(ctx, now)
	builder.WriteString(fmt.Sprintf("\n💡 %s", html.EscapeString(sug.Text)))

	return strings.TrimSpace(builder.String())
}

func sortByPriorityThenDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank(); ri != rj {
			return ri > rj
		}
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
}

// FormatSession renders one class line.
func FormatSession(c model.ClassSession) string {
	line := fmt.Sprintf("• %s–%s %s", c.StartTime, c.EndTime, html.EscapeString(c.Subject))
	if c.Room != "" {
		line += fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(c.Room))
	}
	return line + "\n"
}

// FormatTask renders one task with its due-date status icon.
func FormatTask(task model.Task, now time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	due := task.DueDate.In(now.Location())
	switch {
	case task.Completed:
		icon = "✅"
	case now.After(due):
		icon = "⚠️"
	case due.Sub(now) <= 48*time.Hour:
		icon = "⏳"
	}

	sb.WriteString(fmt.Sprintf("%s %s %s", icon, priorityLabel(task.Priority), html.EscapeString(strings.TrimSpace(task.Title))))
	if task.Subject != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(task.Subject)))
	}
	if !task.Completed {
		if now.After(due) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ %s · <b>vencida</b>", due.Format("2006-01-02")))
		} else {
			sb.WriteString(fmt.Sprintf("\n   ⏰ %s", due.Format("2006-01-02 15:04")))
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "[Alta]"
	case model.PriorityMedium:
		return "[Media]"
	case model.PriorityLow:
		return "[Baja]"
	default:
		return ""
	}
}

// WeeklySummary renders the trailing-week activity report.
func (s *ReminderService) WeeklySummary(now time.Time) string {
	report := s.dashboard.Weekly(now)
	loc := s.dashboard.Location()

	var builder strings.Builder
	builder.WriteString("📊 <b>Resumen semanal</b>\n")
	builder.WriteString(fmt.Sprintf("Efectividad: <b>%d%%</b>\n", report.Effectiveness))
	builder.WriteString(fmt.Sprintf("🎓 Académico: %d\n", report.Academic))
	builder.WriteString(fmt.Sprintf("🧑‍🏫 Monitoría: %d\n", report.Mentoring))
	builder.WriteString(fmt.Sprintf("🧩 Personal: %d\n", report.Personal))

	builder.WriteString("\n<b>Destacados</b>\n")
	if len(report.Highlights) == 0 {
		builder.WriteString("— sin actividad registrada esta semana\n")
	}
	for _, item := range report.Highlights {
		at := item.CompletedAt.In(loc)
		day := []rune(schedule.DayName(at.Weekday()))
		builder.WriteString(fmt.Sprintf("• %s <i>(%s %s)</i>\n", html.EscapeString(item.Title), string(day[:3]), at.Format("02.01")))
	}
	return strings.TrimSpace(builder.String())
}

// WeekSchedule renders the class timetable from Monday to Sunday.
func (s *ReminderService) WeekSchedule() string {
	var sessions []model.ClassSession
	if c := s.dashboard.Catalog(); c != nil {
		sessions = c.Sessions
	}
	week := schedule.Week(sessions)

	var builder strings.Builder
	builder.WriteString("🗓 <b>Horario semanal</b>\n")
	for i := 1; i <= 7; i++ {
		day := time.Weekday(i % 7)
		if len(week[day]) == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("\n<b>%s</b>\n", schedule.DayName(day)))
		for _, c := range week[day] {
			builder.WriteString(FormatSession(c))
		}
	}
	return strings.TrimSpace(builder.String())
}
