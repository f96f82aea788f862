package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

var errEmptyMessage = errors.New("message must not be empty")

// SendChat appends the user's message and queues the bot reply. The reply
// is appended later by the chat consumer.
func (u *Usecase) SendChat(ctx context.Context, sessionID, text string) (entity.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return entity.ChatMessage{}, pkgerror.NewInvalidInput(errEmptyMessage)
	}

	msg := entity.ChatMessage{
		ID:     u.numbers.Generate(),
		Text:   text,
		Sender: entity.SenderUser,
		SentAt: u.clock.Now(),
	}
	if err := u.store.AppendChat(ctx, sessionID, msg); err != nil {
		return entity.ChatMessage{}, mapStoreErr(err)
	}
	u.metrics.RecordChatMessage(string(entity.SenderUser))

	if u.events != nil {
		event := entity.ChatEvent{
			EventID:   sessionID + ":" + strconv.FormatInt(msg.ID, 10),
			SessionID: sessionID,
			MessageID: msg.ID,
			Text:      msg.Text,
		}
		if err := u.events.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish chat event", "event_id", event.EventID, "error", err)
		}
	}

	return msg, nil
}

// Chat returns the session transcript, oldest first.
func (u *Usecase) Chat(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	msgs, err := u.store.ListChat(ctx, sessionID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return msgs, nil
}
