package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/task"
)

type TaskJobs struct {
	taskRepo task.TaskRepository
}

func NewTaskJobs(taskRepo task.TaskRepository) *TaskJobs {
	return &TaskJobs{taskRepo: taskRepo}
}

func (j *TaskJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_started_tasks", 1*time.Hour, j.MarkStartedTasks)
}

// MarkStartedTasks flips Pending tasks whose start date has arrived to
// InProgress. Tasks created with a past start date are caught on the next
// tick, so the hourly cadence is enough.
func (j *TaskJobs) MarkStartedTasks(ctx context.Context) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	count, err := j.taskRepo.MarkStartedUntil(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to mark started tasks: %w", err)
	}

	if count > 0 {
		slog.Info("Cron: Marked tasks as in progress", "count", count)
	}
	return nil
}
