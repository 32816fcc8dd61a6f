package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"study-dashboard/internal/assistant"
	"study-dashboard/internal/wizard"
)

func (b *Bot) startWizard(chatID int64) error {
	m := b.wizardFor(chatID)
	m.Cancel()
	if err := m.Begin(); err != nil {
		return err
	}
	b.log.Infow("wizard started", "chat", chatID)
	return b.sendWithReplyMarkup(chatID, "🆕 ¿Qué quieres registrar?", typeKeyboard())
}

// handleConversation feeds one message into the chat's wizard. Each form
// field is asked in its own message.
func (b *Bot) handleConversation(ctx context.Context, chatID int64, m *wizard.Machine, raw string) error {
	text := strings.TrimSpace(raw)

	switch {
	case isCancelInput(text):
		m.Cancel()
		return b.sendText(chatID, "⏪ Entrada cancelada.")
	case isBackInput(text):
		if err := m.Back(); err != nil {
			return b.sendWithReplyMarkup(chatID, "🆕 ¿Qué quieres registrar?", typeKeyboard())
		}
		return b.sendWithReplyMarkup(chatID, "↩️ Volvamos a empezar. ¿Qué quieres registrar?", typeKeyboard())
	}

	b.log.Infow("conversation step", "chat", chatID, "state", m.State().String())

	if m.State() == wizard.SelectingType {
		kind, ok := kindFromLabel(text)
		if !ok {
			return b.sendWithReplyMarkup(chatID, "Elige una de las opciones del teclado.", typeKeyboard())
		}
		if err := m.Choose(kind); err != nil {
			return err
		}
		return b.promptField(chatID, m)
	}

	// Every field answered: the previous submit was refused, try again.
	if _, pending := m.Field(); !pending {
		return b.submitWizard(ctx, chatID, m)
	}

	field, _ := m.Field()
	var err error
	if isSkipInput(text) {
		err = m.Skip()
	} else {
		err = m.Fill(text)
	}
	switch {
	case errors.Is(err, wizard.ErrRequired):
		return b.sendWithReplyMarkup(chatID, "Este dato es obligatorio. "+fieldPrompt(m.Kind(), field), fieldKeyboard(m, field, b.subjects()))
	case errors.Is(err, wizard.ErrInvalidValue):
		return b.sendWithReplyMarkup(chatID, "No pude entender ese valor. "+fieldPrompt(m.Kind(), field), fieldKeyboard(m, field, b.subjects()))
	case err != nil:
		return err
	}

	if _, pending := m.Field(); pending {
		return b.promptField(chatID, m)
	}
	return b.submitWizard(ctx, chatID, m)
}

func (b *Bot) promptField(chatID int64, m *wizard.Machine) error {
	field, ok := m.Field()
	if !ok {
		return nil
	}
	return b.sendWithReplyMarkup(chatID, fieldPrompt(m.Kind(), field), fieldKeyboard(m, field, b.subjects()))
}

func (b *Bot) subjects() []string {
	if c := b.dashboard.Catalog(); c != nil {
		return c.Subjects
	}
	return nil
}

func (b *Bot) submitWizard(ctx context.Context, chatID int64, m *wizard.Machine) error {
	kind := m.Kind()
	payload, err := m.Submit(b.now().In(b.dashboard.Location()), b.dashboard.AssistantBusy())

	var incomplete *wizard.IncompleteError
	switch {
	case errors.Is(err, wizard.ErrBusy):
		return b.sendWithReplyMarkup(chatID, "⏳ El asistente está ocupado. Envía cualquier mensaje para reintentar.", navKeyboard())
	case errors.As(err, &incomplete):
		names := make([]string, len(incomplete.Fields))
		for i, f := range incomplete.Fields {
			names[i] = fieldName(f)
		}
		return b.sendWithReplyMarkup(chatID, fmt.Sprintf("Faltan datos: %s. Usa «%s» para corregirlos.", strings.Join(names, ", "), btnBack), navKeyboard())
	case err != nil:
		m.Cancel()
		return b.sendText(chatID, fmt.Sprintf("No pude registrar la entrada: %s", escape(err.Error())))
	}

	b.log.Infow("wizard submitted", "chat", chatID, "kind", kind)

	out, err := b.dashboard.Submit(ctx, payload, b.now())
	switch {
	case errors.Is(err, assistant.ErrBusy):
		return b.sendText(chatID, "⏳ El asistente está ocupado, intenta de nuevo en un momento.")
	case err != nil:
		b.log.WithError(err).Errorw("submit payload", "chat", chatID, "kind", kind)
		return b.sendText(chatID, escape(assistant.MsgRequestFailed))
	}

	text := escape(out.Message)
	switch {
	case out.Task != nil:
		text += "\n\n" + taskCreatedText(*out.Task)
	case out.Topic != nil:
		text = "📘 " + text + fmt.Sprintf("\n• %s", escape(out.Topic.Title))
	case kind == wizard.KindQuestion:
		text = "🤖 " + text
	}
	return b.sendText(chatID, text)
}
