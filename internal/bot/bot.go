// Package bot is the Telegram front-end of the dashboard.
package bot

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-dashboard/internal/logger"
	"study-dashboard/internal/service"
	"study-dashboard/internal/wizard"
)

// Bot aggregates Telegram API with services.
type Bot struct {
	api       *tgbotapi.BotAPI
	dashboard *service.DashboardService
	reminders *service.ReminderService
	ownerChat int64
	log       *logger.Logger
	now       func() time.Time

	mu      sync.Mutex
	wizards map[int64]*wizard.Machine
	chats   map[int64]struct{}
}

// New connects to Telegram. A non-zero ownerChat restricts the bot to that
// chat and makes it the only daily report recipient.
func New(token string, ownerChat int64, dashboard *service.DashboardService, reminders *service.ReminderService, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	log.Infow("bot authorized", "account", api.Self.UserName)

	b := &Bot{
		api:       api,
		dashboard: dashboard,
		reminders: reminders,
		ownerChat: ownerChat,
		log:       log,
		now:       time.Now,
		wizards:   make(map[int64]*wizard.Machine),
		chats:     make(map[int64]struct{}),
	}
	if ownerChat != 0 {
		b.chats[ownerChat] = struct{}{}
	}
	return b, nil
}

// Start begins polling updates until ctx is cancelled. Updates are handled
// one at a time.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Infow("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.log.WithError(err).Errorw("handle callback")
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if !b.allowed(update.Message.Chat.ID) {
				b.log.Warnw("message from foreign chat ignored", "chat", update.Message.Chat.ID)
				continue
			}
			b.rememberChat(update.Message.Chat.ID)
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.log.WithError(err).Errorw("handle message", "chat", update.Message.Chat.ID)
			}
		}
	}

	return nil
}

// SendDailyReport sends the morning report to the owner, or to every chat
// seen since start when no owner is configured.
func (b *Bot) SendDailyReport(ctx context.Context) error {
	chats := b.knownChats()
	if len(chats) == 0 {
		b.log.Warnw("daily report skipped, no recipient yet")
		return nil
	}
	text := b.reminders.DailyReport(ctx, b.now())
	for _, chatID := range chats {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.sendText(chatID, text); err != nil {
			b.log.WithError(err).Errorw("send daily report", "chat", chatID)
		}
	}
	return nil
}

func (b *Bot) allowed(chatID int64) bool {
	return b.ownerChat == 0 || chatID == b.ownerChat
}

func (b *Bot) rememberChat(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chats[chatID] = struct{}{}
}

func (b *Bot) knownChats() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int64, 0, len(b.chats))
	for id := range b.chats {
		out = append(out, id)
	}
	return out
}

// activeWizard returns the chat's wizard when an entry is in progress.
func (b *Bot) activeWizard(chatID int64) (*wizard.Machine, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.wizards[chatID]
	if !ok || m.State() == wizard.Idle {
		return nil, false
	}
	return m, true
}

func (b *Bot) wizardFor(chatID int64) *wizard.Machine {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.wizards[chatID]
	if !ok {
		m = wizard.New()
		b.wizards[chatID] = m
	}
	return m
}

func (b *Bot) clearWizard(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := b.wizards[chatID]; ok {
		m.Cancel()
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) ack(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.WithError(err).Warnw("callback ack")
	}
}

func escape(s string) string {
	return html.EscapeString(s)
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	clean = normalizeTitle(clean)
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func normalizeTitle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
