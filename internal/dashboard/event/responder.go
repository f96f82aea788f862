package event

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
	"github.com/shandysiswandi/godna/internal/pkg/pkgmetric"
	"github.com/shandysiswandi/godna/internal/pkg/pkguid"
)

// BotReply is the canned answer to every user message.
const BotReply = "This is a demo bot. Your question will be answered soon!"

// DefaultReplyDelay is how long the bot "types" before answering.
const DefaultReplyDelay = 1200 * time.Millisecond

type ChatStore interface {
	AppendChat(ctx context.Context, sessionID string, msg entity.ChatMessage) error
}

type ResponderConfig struct {
	Store   ChatStore
	Clock   clockwork.Clock
	ID      pkguid.NumberID
	Delay   time.Duration
	Metrics *pkgmetric.Recorder
}

// BotResponder appends the canned reply to the session transcript once the
// reply delay has elapsed.
type BotResponder struct {
	store   ChatStore
	clock   clockwork.Clock
	id      pkguid.NumberID
	delay   time.Duration
	metrics *pkgmetric.Recorder
}

func NewBotResponder(cfg ResponderConfig) *BotResponder {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultReplyDelay
	}

	return &BotResponder{
		store:   cfg.Store,
		clock:   cfg.Clock,
		id:      cfg.ID,
		delay:   cfg.Delay,
		metrics: cfg.Metrics,
	}
}

func (b *BotResponder) Handle(ctx context.Context, event entity.ChatEvent) error {
	if event.SessionID == "" {
		return errors.New("missing session id")
	}

	select {
	case <-b.clock.After(b.delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	msg := entity.ChatMessage{
		ID:     b.id.Generate(),
		Text:   BotReply,
		Sender: entity.SenderBot,
		SentAt: b.clock.Now(),
	}

	err := b.store.AppendChat(ctx, event.SessionID, msg)
	if errors.Is(err, pkgerror.ErrNotFound) {
		slog.WarnContext(ctx, "drop bot reply for unknown session", "event_id", event.EventID)
		return nil
	}
	if err != nil {
		return err
	}

	b.metrics.RecordChatMessage(string(entity.SenderBot))
	slog.InfoContext(ctx, "bot replied", "event_id", event.EventID, "reply_to", event.MessageID)

	return nil
}
