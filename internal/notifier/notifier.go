// Package notifier delivers status messages to a single Telegram chat and
// suppresses a message identical to the one delivered just before it.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ErrDeliveryFailed is wrapped by every error returned when the messaging
// API rejects or fails to deliver a message.
var ErrDeliveryFailed = errors.New("message delivery failed")

// Sender is the part of the Telegram client the notifier needs.
// *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Notifier sends messages to one fixed chat.
type Notifier struct {
	sender Sender
	chatID string
	logger *slog.Logger
}

// New creates a Notifier bound to chatID.
func New(sender Sender, chatID string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		sender: sender,
		chatID: chatID,
		logger: logger.With("component", "notifier"),
	}
}

// Notify delivers message unless it equals last. It returns whether a
// delivery happened and the message to remember as the last one. On failure
// last is returned unchanged together with an error wrapping
// ErrDeliveryFailed.
func (n *Notifier) Notify(ctx context.Context, message, last string) (bool, string, error) {
	if message == last {
		n.logger.DebugContext(ctx, "Skipping repeated message", "chat_id", n.chatID)
		return false, last, nil
	}

	sent, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   message,
	})
	if err != nil {
		return false, last, fmt.Errorf("%w: chat %s: %v", ErrDeliveryFailed, n.chatID, err)
	}

	attrs := []any{"chat_id", n.chatID}
	if sent != nil {
		attrs = append(attrs, "message_id", sent.ID)
	}
	n.logger.DebugContext(ctx, "Message delivered", attrs...)
	return true, message, nil
}
