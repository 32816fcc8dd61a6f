package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
	"study-dashboard/internal/wizard"
)

const (
	cbTogglePrefix  = "toggle:"
	cbAdvancePrefix = "advance:"
	cbViewPrefix    = "view:"
)

const (
	btnSkip            = "⏭️ Omitir"
	btnBack            = "↩️ Atrás"
	btnCancel          = "⏪ Cancelar"
	menuLabelNew       = "➕ Nuevo"
	menuLabelTasks     = "📋 Tareas"
	menuLabelToday     = "📅 Hoy"
	menuLabelMentoring = "🧑‍🏫 Monitorías"
	menuLabelWeek      = "📊 Semana"
	menuLabelHelp      = "ℹ️ Ayuda"
)

var kindLabels = []struct {
	label string
	kind  wizard.Kind
}{
	{"📝 Tarea", wizard.KindTask},
	{"👥 Reunión", wizard.KindMeeting},
	{"❓ Pregunta", wizard.KindQuestion},
	{"🧑‍🏫 Monitoría", wizard.KindMentoring},
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNew),
			tgbotapi.NewKeyboardButton(menuLabelTasks),
			tgbotapi.NewKeyboardButton(menuLabelToday),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelMentoring),
			tgbotapi.NewKeyboardButton(menuLabelWeek),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func typeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(kindLabels[0].label),
			tgbotapi.NewKeyboardButton(kindLabels[1].label),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(kindLabels[2].label),
			tgbotapi.NewKeyboardButton(kindLabels[3].label),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func navKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// fieldKeyboard offers the known choices for f, a skip button when f is
// optional and the navigation row.
func fieldKeyboard(m *wizard.Machine, f wizard.Field, subjects []string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, opts := range fieldOptions(f, subjects) {
		row := make([]tgbotapi.KeyboardButton, 0, len(opts))
		for _, o := range opts {
			row = append(row, tgbotapi.NewKeyboardButton(o))
		}
		rows = append(rows, row)
	}
	if m.Optional(f) {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSkip)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnBack),
		tgbotapi.NewKeyboardButton(btnCancel),
	))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// fieldOptions lays out the choices for f; subjects go two per row.
func fieldOptions(f wizard.Field, subjects []string) [][]string {
	switch f {
	case wizard.FieldSubject:
		var rows [][]string
		for i := 0; i < len(subjects); i += 2 {
			end := min(i+2, len(subjects))
			rows = append(rows, subjects[i:end])
		}
		return rows
	case wizard.FieldPriority:
		return [][]string{{"Alta", "Media", "Baja"}}
	case wizard.FieldSubtype:
		return [][]string{{"Tema", "Fecha", "Taller"}}
	default:
		return nil
	}
}

func viewButtons() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⚡ Prioridad", cbViewPrefix+string(planner.ViewPriority)),
		tgbotapi.NewInlineKeyboardButtonData("📚 Materias", cbViewPrefix+string(planner.ViewSubject)),
		tgbotapi.NewInlineKeyboardButtonData("🗓 Horario", cbViewPrefix+string(planner.ViewCalendar)),
	)
}

func fieldPrompt(kind wizard.Kind, f wizard.Field) string {
	switch f {
	case wizard.FieldTitle:
		switch kind {
		case wizard.KindMeeting:
			return "👥 ¿Con quién o sobre qué es la reunión?"
		case wizard.KindMentoring:
			return "🧑‍🏫 Título del tema o actividad:"
		default:
			return "📝 ¿Cómo se llama la tarea?"
		}
	case wizard.FieldSubject:
		return "📚 ¿De qué materia es? (o «Omitir»)"
	case wizard.FieldPriority:
		return "⚡ ¿Qué prioridad tiene? (por defecto Media)"
	case wizard.FieldDate:
		if kind == wizard.KindTask {
			return "📅 Fecha límite en formato <code>2025-11-30</code> (o «Omitir» para hoy)."
		}
		return "📅 Fecha en formato <code>2025-11-30</code>."
	case wizard.FieldTime:
		return "⏰ Hora en formato <code>14:30</code>."
	case wizard.FieldSubtype:
		return "🧑‍🏫 ¿Es un tema, una fecha de sesión o un taller?"
	case wizard.FieldQuestion:
		return "❓ ¿Qué quieres preguntarle al asistente?"
	default:
		return fmt.Sprintf("Escribe %s:", fieldName(f))
	}
}

func fieldName(f wizard.Field) string {
	switch f {
	case wizard.FieldTitle:
		return "título"
	case wizard.FieldSubject:
		return "materia"
	case wizard.FieldPriority:
		return "prioridad"
	case wizard.FieldDate:
		return "fecha"
	case wizard.FieldTime:
		return "hora"
	case wizard.FieldSubtype:
		return "tipo"
	case wizard.FieldQuestion:
		return "pregunta"
	default:
		return string(f)
	}
}

func kindFromLabel(text string) (wizard.Kind, bool) {
	value := strings.ToLower(strings.TrimSpace(text))
	for _, kl := range kindLabels {
		if value == strings.ToLower(kl.label) {
			return kl.kind, true
		}
		// label without the emoji prefix
		if _, plain, ok := strings.Cut(kl.label, " "); ok && value == strings.ToLower(plain) {
			return kl.kind, true
		}
	}
	return "", false
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "-" || value == strings.ToLower(btnSkip) || value == "omitir" || value == "skip"
}

func isBackInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnBack) || value == "atrás" || value == "atras"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "cancelar"
}

func viewLabel(v planner.View) string {
	switch v {
	case planner.ViewSubject:
		return "por materia"
	case planner.ViewCalendar:
		return "horario"
	default:
		return "por prioridad"
	}
}

func priorityName(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "Alta"
	case model.PriorityLow:
		return "Baja"
	default:
		return "Media"
	}
}

func statusLabel(s model.MentoringStatus) string {
	switch s {
	case model.MentoringInProgress:
		return "🟡 En curso"
	case model.MentoringCompleted:
		return "✅ Completado"
	default:
		return "📘 Preparado"
	}
}
