// Package main contains the entrypoint for the homework status watcher.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgard/homeworkbot/internal/bot"
	"github.com/edgard/homeworkbot/internal/bot/tasks"
	"github.com/edgard/homeworkbot/internal/config"
	"github.com/edgard/homeworkbot/internal/logger"
	"github.com/edgard/homeworkbot/internal/notifier"
	"github.com/edgard/homeworkbot/internal/poller"
	"github.com/edgard/homeworkbot/internal/practicum"
	"github.com/edgard/homeworkbot/internal/telegram"
)

// configPathEnv overrides the location of the optional YAML config file.
const configPathEnv = "BOT_CONFIG"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Stdout)
	stop()
	os.Exit(exitCode)
}

// run initializes all components (config, logger, telegram client, status
// client, notifier, poller, scheduler) and blocks until shutdown. Logs go to
// stdout. Missing credentials end the process with exit code 0 before
// polling starts.
func run(ctx context.Context, stdout io.Writer) int {
	configPath := os.Getenv(configPathEnv)
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", configPath, "error", err)
		return 1
	}

	log := logger.New(stdout, cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	creds := cfg.Credentials()
	if err := config.CheckCredentials(creds); err != nil {
		logger.Critical(ctx, log, "One or more required environment variables are unavailable", "error", err)
		return 0
	}

	tg, err := telegram.NewTelegramBot(creds.TelegramToken, log)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	client := practicum.NewClient(cfg.Practicum.Endpoint, creds.PracticumToken, cfg.Practicum.Timeout, log)
	notify := notifier.New(tg, creds.TelegramChatID, log)
	watcher := poller.New(client, notify, log, poller.WithRetryPeriod(cfg.Poller.RetryPeriod))

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger: log,
		Stats:  watcher,
	}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, watcher, sched)

	log.Info("Starting homework watcher...", "endpoint", cfg.Practicum.Endpoint, "retry_period", cfg.Poller.RetryPeriod)
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Watcher stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Watcher stopped gracefully.")
	return 0
}
