package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// NewScheduler creates a scheduler that enqueues a budget sweep on cronSpec,
// evaluated in loc.
func NewScheduler(redis asynq.RedisConnOpt, cronSpec string, loc *time.Location) (*asynq.Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	scheduler := asynq.NewScheduler(redis, &asynq.SchedulerOpts{Location: loc})

	task, err := NewBudgetSweepTask("")
	if err != nil {
		return nil, err
	}
	// A sweep that misses its slot is superseded by the next one.
	if _, err := scheduler.Register(cronSpec, task, asynq.MaxRetry(0), asynq.Unique(time.Minute)); err != nil {
		return nil, fmt.Errorf("register budget sweep: %w", err)
	}
	return scheduler, nil
}
