// Package bot orchestrates the homework watcher: it runs the status poller
// and the maintenance scheduler and manages their lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Poller is the long-running status watch loop.
type Poller interface {
	Run(ctx context.Context) error
}

// Bot represents the main application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	poller    Poller
	scheduler *Scheduler
}

// NewBot creates a new orchestrator for the given poller and scheduler.
func NewBot(logger *slog.Logger, poller Poller, scheduler *Scheduler) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		poller:    poller,
		scheduler: scheduler,
	}
}

// Run starts the poller and the scheduler and blocks until ctx is cancelled
// or a component fails to start.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting status poller...")
		err := b.poller.Run(gCtx)
		b.logger.Info("Status poller stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Status poller stopped unexpectedly without context cancellation.", "error", err)
			return fmt.Errorf("status poller stopped unexpectedly: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
