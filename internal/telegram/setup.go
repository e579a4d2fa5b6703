// Package telegram builds the Telegram Bot API client used to deliver
// notifications.
package telegram

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
)

// requestTimeout bounds a single Bot API call.
const requestTimeout = 30 * time.Second

// NewTelegramBot creates a send-only bot instance using the go-telegram/bot
// library. getMe is skipped so a Telegram outage does not block startup;
// delivery errors surface on the first send instead.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	options := append([]bot.Option{
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(requestTimeout, &http.Client{Timeout: requestTimeout}),
		bot.WithErrorsHandler(func(err error) {
			log.Error("Telegram client error", "error", err)
		}),
	}, opts...)

	b, err := bot.New(token, options...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", maskToken(token))
	return b, nil
}

// maskToken keeps the numeric bot id part of a token for log correlation.
func maskToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return "***"
	}
	return token[:visible] + "..."
}
