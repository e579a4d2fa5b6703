package tasks

import "context"

// ScheduledTaskFunc defines the signature for all scheduled tasks.
// The context is cancelled when the scheduler stops.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns all known tasks keyed by the name used in the
// scheduler.tasks configuration section.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		"heartbeat": newHeartbeatTask(deps),
	}

	if deps.Logger != nil {
		deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	}
	return tasks
}
