// Package tasks implements scheduled maintenance tasks for the homework
// watcher. It includes task definitions, dependencies, and registration.
package tasks

import (
	"log/slog"

	"github.com/edgard/homeworkbot/internal/poller"
)

// StatsSource exposes a read-only view of the poller.
type StatsSource interface {
	Snapshot() poller.Stats
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Stats  StatsSource
}
