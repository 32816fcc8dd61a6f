package assistant

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"study-dashboard/internal/logger"
)

// ErrBusy means a previous call has not finished yet.
var ErrBusy = errors.New("assistant: a request is already in flight")

// Static texts shown when the model cannot be used.
const (
	MsgNoCredential      = "Configura tu API Key para usar el asistente."
	MsgRequestFailed     = "Hubo un error al procesar tu solicitud."
	MsgSuggestNoKey      = "Configura tu API Key para recibir consejos inteligentes."
	MsgSuggestFailed     = "No pude generar una recomendación ahora."
	MsgRateLimited       = "Demasiadas consultas seguidas. Intenta de nuevo en un momento."
	MsgSuggestionPending = "Analizando tu calendario académico para optimizar tu día..."
)

// Service fronts a Client. It allows one outstanding call per integration
// point and never returns a model failure to the caller: every failure
// becomes a fallback text.
type Service struct {
	client  Client
	limiter *rate.Limiter
	timeout time.Duration
	log     *logger.Logger

	askGate     Gate
	suggestGate Gate
}

// NewService wraps client. A nil client means no credential is configured.
// A nil limiter disables pacing; a zero timeout disables the per-call
// deadline.
func NewService(client Client, limiter *rate.Limiter, timeout time.Duration, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{client: client, limiter: limiter, timeout: timeout, log: log}
}

// NewLimiter allows perMinute calls per minute with a burst of one.
// Zero or less returns nil, which disables pacing.
func NewLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// Enabled reports whether a model backend is configured.
func (s *Service) Enabled() bool { return s.client != nil }

// Busy reports whether a free-text request is in flight.
func (s *Service) Busy() bool { return s.askGate.Busy() }

// Ask sends free text to the model. The only error is ErrBusy; every other
// failure yields a Reply with Fallback set.
func (s *Service) Ask(ctx context.Context, input string, now time.Time) (Reply, error) {
	if !s.askGate.TryAcquire() {
		return Reply{}, ErrBusy
	}
	defer s.askGate.Release()

	if s.client == nil {
		return fallbackReply(MsgNoCredential), nil
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return fallbackReply(MsgRateLimited), nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	reply, err := s.client.ParseInput(ctx, input, now)
	if err != nil {
		s.log.WithError(err).Warnw("assistant parse failed")
		return fallbackReply(MsgRequestFailed), nil
	}
	if reply == nil || reply.Message == "" {
		s.log.Warnw("assistant returned an empty reply")
		return fallbackReply(MsgRequestFailed), nil
	}
	return *reply, nil
}

// Suggest asks for the daily suggestion. The only error is ErrBusy.
func (s *Service) Suggest(ctx context.Context, snap Snapshot) (Suggestion, error) {
	if !s.suggestGate.TryAcquire() {
		return Suggestion{}, ErrBusy
	}
	defer s.suggestGate.Release()

	if s.client == nil {
		return fallbackSuggestion(MsgSuggestNoKey), nil
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return fallbackSuggestion(MsgSuggestFailed), nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sug, err := s.client.Suggest(ctx, snap)
	if err != nil || sug == nil {
		if err != nil {
			s.log.WithError(err).Warnw("assistant suggestion failed")
		}
		return fallbackSuggestion(MsgSuggestFailed), nil
	}
	return *sug, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func fallbackReply(msg string) Reply {
	return Reply{Intent: IntentUnknown, Message: msg, Fallback: true}
}

func fallbackSuggestion(msg string) Suggestion {
	return Suggestion{Text: msg, Category: CategoryGeneral, Fallback: true}
}
