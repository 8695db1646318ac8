package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskRepo struct {
	task.TaskRepository
	markedUntil time.Time
	count       int64
	err         error
}

func (f *fakeTaskRepo) MarkStartedUntil(ctx context.Context, day time.Time) (int64, error) {
	f.markedUntil = day
	return f.count, f.err
}

func TestMarkStartedTasks(t *testing.T) {
	repo := &fakeTaskRepo{count: 3}
	jobs := NewTaskJobs(repo)

	err := jobs.MarkStartedTasks(context.Background())
	require.NoError(t, err)

	// The cutoff is today at midnight UTC.
	assert.Equal(t, time.UTC, repo.markedUntil.Location())
	assert.Equal(t, 0, repo.markedUntil.Hour())
	assert.False(t, repo.markedUntil.IsZero())
}

func TestMarkStartedTasks_PropagatesError(t *testing.T) {
	repo := &fakeTaskRepo{err: errors.New("connection lost")}
	jobs := NewTaskJobs(repo)

	err := jobs.MarkStartedTasks(context.Background())
	assert.Error(t, err)
}

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	ran := 0
	s.AddJob("test_job", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, 1, ran)
}
