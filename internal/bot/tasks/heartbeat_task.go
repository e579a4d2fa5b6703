package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// newHeartbeatTask creates a task that logs the poller counters, so the
// operator can tell the watcher is alive while no status changes arrive.
func newHeartbeatTask(deps TaskDeps) ScheduledTaskFunc {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("task", "heartbeat")

	return func(ctx context.Context) error {
		if deps.Stats == nil {
			return errors.New("heartbeat: no stats source")
		}
		s := deps.Stats.Snapshot()

		attrs := []any{
			"cycles", s.Cycles,
			"delivered", s.Delivered,
			"duplicates", s.Duplicates,
			"no_change", s.NoChange,
			"failures", s.Failures,
			"cursor", s.Cursor,
			"last_outcome", s.LastOutcome,
		}
		if !s.LastCycleAt.IsZero() {
			attrs = append(attrs, "since_last_cycle", time.Since(s.LastCycleAt).Round(time.Second))
		}
		if s.LastError != "" {
			attrs = append(attrs, "last_error", s.LastError)
		}

		log.InfoContext(ctx, "Poller heartbeat", attrs...)
		return nil
	}
}
