package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-dashboard/internal/assistant"
	"study-dashboard/internal/model"
	"study-dashboard/internal/planner"
	"study-dashboard/internal/service"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.log.Infow("command", "chat", chatID, "command", msg.Command(), "args", msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if m, ok := b.activeWizard(chatID); ok {
		return b.handleConversation(ctx, chatID, m, msg.Text)
	}

	if handled, err := b.handleMenuAlias(ctx, msg); handled {
		return err
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	return b.handleFreeText(ctx, chatID, text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		return b.handleStart(msg)
	case "help", "ayuda":
		return b.handleHelp(chatID)
	case "nuevo":
		return b.startWizard(chatID)
	case "cancelar", "cancel":
		b.clearWizard(chatID)
		return b.sendText(chatID, "⏪ Entrada cancelada.")
	case "tareas":
		view, filter := parseListArgs(args)
		return b.sendTaskList(chatID, view, filter)
	case "hecho":
		return b.handleDone(ctx, chatID, args)
	case "hoy":
		return b.sendText(chatID, b.reminders.DailyReport(ctx, b.now()))
	case "manana":
		return b.sendText(chatID, "📅 "+b.reminders.TomorrowClasses(b.now()))
	case "resumen":
		return b.sendText(chatID, "📌 "+b.reminders.PendingSummary(b.now()))
	case "monitoria":
		return b.sendText(chatID, "🧑‍🏫 "+b.reminders.MentoringHours())
	case "mentorias":
		return b.sendTopicList(chatID)
	case "tema":
		return b.handleAddTopic(ctx, chatID, args)
	case "semana":
		return b.sendText(chatID, b.reminders.WeeklySummary(b.now()))
	case "horario":
		return b.sendText(chatID, b.reminders.WeekSchedule())
	default:
		return b.sendText(chatID, "Comando no soportado. Revisa /help.")
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	name := ""
	if msg.From != nil {
		name = strings.TrimSpace(msg.From.FirstName)
	}
	if name == "" {
		name = "estudiante"
	}
	text := fmt.Sprintf(
		"👋 ¡Hola, %s!\n<b>Soy tu tablero de estudio: tareas, horario y monitorías en un solo lugar.</b>\n\n%s",
		escape(name), helpText,
	)
	return b.sendText(msg.Chat.ID, text)
}

const helpText = "Comandos:\n" +
	"• /nuevo — registrar tarea, reunión, pregunta o monitoría\n" +
	"• /tareas [prioridad|materias|horario] [filtro] — tareas pendientes\n" +
	"• /hecho &lt;id&gt; — marcar o desmarcar una tarea\n" +
	"• /hoy — resumen del día con recomendación\n" +
	"• /manana — clases de mañana\n" +
	"• /resumen — conteo de pendientes\n" +
	"• /monitoria — tus horarios de monitoría\n" +
	"• /mentorias — temas de monitoría y su estado\n" +
	"• /tema &lt;título&gt; — agregar un tema de monitoría\n" +
	"• /semana — actividad de los últimos 7 días\n" +
	"• /horario — horario semanal de clases\n" +
	"• /cancelar — cancelar la entrada actual\n\n" +
	"También puedes escribirme en lenguaje natural, por ejemplo: «tarea de simulación para el viernes»."

func (b *Bot) handleHelp(chatID int64) error {
	return b.sendText(chatID, "ℹ️ <b>Ayuda</b>\n"+helpText)
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	chatID := msg.Chat.ID
	switch strings.ToLower(strings.TrimSpace(msg.Text)) {
	case strings.ToLower(menuLabelNew):
		return true, b.startWizard(chatID)
	case strings.ToLower(menuLabelTasks):
		return true, b.sendTaskList(chatID, planner.ViewPriority, "")
	case strings.ToLower(menuLabelToday):
		return true, b.sendText(chatID, b.reminders.DailyReport(ctx, b.now()))
	case strings.ToLower(menuLabelMentoring):
		return true, b.sendTopicList(chatID)
	case strings.ToLower(menuLabelWeek):
		return true, b.sendText(chatID, b.reminders.WeeklySummary(b.now()))
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(chatID)
	default:
		return false, nil
	}
}

// handleFreeText sends text outside a wizard to the assistant.
func (b *Bot) handleFreeText(ctx context.Context, chatID int64, text string) error {
	out, err := b.dashboard.Ask(ctx, text, b.now())
	switch {
	case errors.Is(err, assistant.ErrBusy):
		return b.sendText(chatID, "⏳ Sigo procesando tu consulta anterior, dame un momento.")
	case err != nil:
		b.log.WithError(err).Errorw("free text", "chat", chatID)
		return b.sendText(chatID, escape(assistant.MsgRequestFailed))
	}

	reply := "🤖 " + escape(out.Message)
	if out.Task != nil {
		b.log.Infow("task created from text", "chat", chatID, "task", out.Task.ID)
		reply += "\n\n" + taskCreatedText(*out.Task)
	}
	return b.sendText(chatID, reply)
}

func (b *Bot) sendTaskList(chatID int64, view planner.View, filter string) error {
	now := b.now().In(b.dashboard.Location())
	tasks := b.dashboard.Visible(view, filter)

	var builder strings.Builder
	if view == planner.ViewCalendar {
		builder.WriteString(b.reminders.WeekSchedule())
		builder.WriteString("\n\n")
	}
	builder.WriteString(fmt.Sprintf("📋 <b>Tareas pendientes</b> · %s", viewLabel(view)))
	if filter != "" {
		builder.WriteString(fmt.Sprintf(" · <i>%s</i>", escape(filter)))
	}
	builder.WriteString("\n\n")

	var rows [][]tgbotapi.InlineKeyboardButton
	if len(tasks) == 0 {
		builder.WriteString("No hay tareas pendientes con este filtro. Agrega una con /nuevo.")
	}
	for _, task := range tasks {
		builder.WriteString(fmt.Sprintf("<code>%s</code> %s", shortID(task.ID), service.FormatTask(task, now)))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ "+shortTitle(task.Title, 28), cbTogglePrefix+task.ID),
		))
	}
	rows = append(rows, viewButtons())

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleDone(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		return b.sendText(chatID, "Indica el ID de la tarea: /hecho 1a2b3c4d")
	}
	id, err := resolveTaskID(b.dashboard.Tasks(), args)
	switch {
	case errors.Is(err, errAmbiguousID):
		return b.sendText(chatID, fmt.Sprintf("El ID «%s» es ambiguo, usa más caracteres.", escape(args)))
	case err != nil:
		return b.sendText(chatID, "Tarea no encontrada.")
	}
	return b.toggleTask(ctx, chatID, id)
}

func (b *Bot) toggleTask(ctx context.Context, chatID int64, id string) error {
	task, err := b.dashboard.Toggle(ctx, id, b.now())
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		return b.sendText(chatID, "Tarea no encontrada.")
	case err != nil:
		b.log.WithError(err).Errorw("toggle task", "task", id)
		return b.sendText(chatID, fmt.Sprintf("No pude guardar el cambio: %s", escape(err.Error())))
	}

	title := escape(normalizeTitle(task.Title))
	if task.Completed {
		return b.sendText(chatID, fmt.Sprintf("✅ Tarea «%s» completada.", title))
	}
	return b.sendText(chatID, fmt.Sprintf("↩️ Tarea «%s» vuelve a estar pendiente.", title))
}

func (b *Bot) sendTopicList(chatID int64) error {
	topics := b.dashboard.Topics()

	var builder strings.Builder
	builder.WriteString("🧑‍🏫 <b>Temas de monitoría</b>\n\n")
	if len(topics) == 0 {
		builder.WriteString("Aún no hay temas. Agrega uno con /tema &lt;título&gt; o desde /nuevo.")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, topic := range topics {
		builder.WriteString(fmt.Sprintf("%s %s", statusLabel(topic.Status), escape(topic.Title)))
		if topic.Students != "" {
			builder.WriteString(fmt.Sprintf(" <i>(%s)</i>", escape(topic.Students)))
		}
		if topic.Notes != "" {
			builder.WriteString(fmt.Sprintf("\n   📝 %s", escape(topic.Notes)))
		}
		builder.WriteByte('\n')
		next := statusLabel(topic.Status.Next())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s → %s", shortTitle(topic.Title, 20), next), cbAdvancePrefix+topic.ID),
		))
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(builder.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	} else {
		msg.ReplyMarkup = mainMenuKeyboard()
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleAddTopic(ctx context.Context, chatID int64, args string) error {
	title, students, _ := strings.Cut(args, "|")
	topic, err := b.dashboard.AddTopic(ctx, title, students, "")
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		return b.sendText(chatID, "Indica el tema: /tema Regresión lineal | Grupo 3")
	case err != nil:
		b.log.WithError(err).Errorw("add topic")
		return b.sendText(chatID, fmt.Sprintf("No pude guardar el tema: %s", escape(err.Error())))
	}
	return b.sendText(chatID, fmt.Sprintf("📘 Tema «%s» agregado como preparado.", escape(topic.Title)))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	chatID := cb.Message.Chat.ID
	if !b.allowed(chatID) {
		b.ack(cb, "")
		return nil
	}

	action, value := parseCallback(cb.Data)
	b.log.Infow("callback", "chat", chatID, "action", action, "value", value)

	switch action {
	case cbTogglePrefix:
		b.ack(cb, "")
		return b.toggleTask(ctx, chatID, value)
	case cbAdvancePrefix:
		topic, err := b.dashboard.AdvanceTopic(ctx, value)
		if errors.Is(err, service.ErrTopicNotFound) {
			b.ack(cb, "Tema no encontrado")
			return nil
		}
		if err != nil {
			b.ack(cb, "")
			return b.sendText(chatID, fmt.Sprintf("No pude guardar el cambio: %s", escape(err.Error())))
		}
		b.ack(cb, statusLabel(topic.Status))
		return b.sendTopicList(chatID)
	case cbViewPrefix:
		b.ack(cb, "")
		view, ok := planner.ParseView(value)
		if !ok {
			return nil
		}
		return b.sendTaskList(chatID, view, "")
	default:
		b.ack(cb, "")
		return nil
	}
}

func taskCreatedText(task model.Task) string {
	var summary strings.Builder
	summary.WriteString("✅ <b>Tarea guardada</b>\n")
	summary.WriteString(fmt.Sprintf("• <b>ID:</b> <code>%s</code>\n", shortID(task.ID)))
	summary.WriteString(fmt.Sprintf("• <b>Título:</b> %s\n", escape(normalizeTitle(task.Title))))
	if task.Subject != "" {
		summary.WriteString(fmt.Sprintf("• <b>Materia:</b> %s\n", escape(task.Subject)))
	}
	summary.WriteString(fmt.Sprintf("• <b>Prioridad:</b> %s\n", priorityName(task.Priority)))
	summary.WriteString(fmt.Sprintf("• <b>Fecha:</b> %s", task.DueDate.Format("2006-01-02 15:04")))
	return summary.String()
}
