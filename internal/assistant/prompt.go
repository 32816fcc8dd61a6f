package assistant

import (
	"fmt"
	"strings"
	"time"

	"study-dashboard/internal/model"
	"study-dashboard/internal/schedule"
)

// BuildSystemPrompt describes the owner and the assistant's duties.
func BuildSystemPrompt(profile schedule.Profile, subjects []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Eres el asistente personal digital exclusivo para %s.\n", profile.Name)
	if profile.Age > 0 {
		fmt.Fprintf(&b, "Edad: %d años.\n", profile.Age)
	}
	fmt.Fprintf(&b, "Universidad: %s.\nPrograma: %s.\nRol adicional: %s.\n\n", profile.University, profile.Program, profile.Role)
	fmt.Fprintf(&b, "Materias actuales: %s.\n\n", strings.Join(subjects, ", "))
	b.WriteString(`Tus responsabilidades:
1. Gestionar listas de tareas, clases y reuniones.
2. Recordar su rol de monitor y sugerir espacios para ello.
3. Detectar sobrecarga académica y sugerir descansos.
4. Responder siempre de forma clara, ordenada y útil.

IMPORTANTE:
- Si el usuario agrega una tarea relacionada con una materia, asocia la materia correctamente.
- Si menciona "monitoría", clasifícalo como MENTORING.
- Organiza por prioridad.
`)
	return b.String()
}

// BuildParsePrompt wraps the user's text with today's date.
func BuildParsePrompt(input string, now time.Time, subjects []string) string {
	return fmt.Sprintf(`Hoy es: %s, %s.
Input del usuario: %q

Analiza si es una nueva tarea, una consulta de horario o simplemente charla.
Si es tarea, infiere fecha límite y prioridad basándote en el contexto (ej: "para mañana" es prioridad HIGH).
Si menciona una materia (%s), asígnala al campo 'subject'.`,
		schedule.DayName(now.Weekday()), now.Format("2006-01-02"), input, strings.Join(subjects, ", "))
}

// BuildSuggestionPrompt summarizes the day for the suggestion request.
func BuildSuggestionPrompt(profile schedule.Profile, snap Snapshot) string {
	pending := make([]string, 0, len(snap.Pending))
	for _, t := range snap.Pending {
		pending = append(pending, fmt.Sprintf("%s (%s)", t.Title, t.Priority))
	}
	classes := make([]string, 0, len(snap.Classes))
	for _, c := range snap.Classes {
		classes = append(classes, c.Subject)
	}
	return fmt.Sprintf(`Hoy es %s.
Usuario: %s (%s).
Clases de hoy: %s.
Tareas pendientes: %s.

Genera una recomendación estratégica (máx 2 oraciones).
- Si tiene muchas tareas, prioriza.
- Si el día es ligero, sugiere adelantar trabajo de monitoría.
- Si es fin de semana, sugiere descanso o repaso suave.`,
		schedule.DayName(snap.Now.Weekday()), profile.Name, profile.Role,
		orNone(classes), orNone(pending))
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "Ninguna"
	}
	return strings.Join(items, ", ")
}

var taskKinds = []string{string(model.KindAcademic), string(model.KindPersonal), string(model.KindMentoring), string(model.KindOther)}

var priorities = []string{string(model.PriorityHigh), string(model.PriorityMedium), string(model.PriorityLow)}
