package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrSubmissionFailed means the provider rejected the initial
	// request. No polling is attempted after it.
	ErrSubmissionFailed = errors.New("task submission rejected")

	// ErrTaskFailed means the provider reported a terminal failure.
	// The task will never finish.
	ErrTaskFailed = errors.New("task failed at provider")

	// ErrTimedOut means the attempt budget was exhausted (or the
	// caller's context expired between attempts) while the task was
	// still non-terminal. The task may still finish at the provider.
	ErrTimedOut = errors.New("task polling timed out")
)

// SubmitFunc starts one unit of work at a provider and returns its
// handle. Called exactly once per executor run.
type SubmitFunc func(ctx context.Context) (Handle, error)

// PollFunc fetches the current state of a previously submitted task.
// A non-nil error is treated as transient and consumes one attempt.
type PollFunc func(ctx context.Context, h Handle) (Handle, error)

// Executor drives a single submit/poll/terminal-state loop. It holds
// no per-task state; one run is bound to exactly one handle.
type Executor struct {
	Logger *slog.Logger
}

func NewExecutor() *Executor {
	return &Executor{Logger: slog.Default()}
}

// Run submits a task and polls it until it reaches a terminal state or
// the policy's attempt budget runs out. Each poll is preceded by
// policy.Interval of suspension; polls for one handle are strictly
// sequential. The returned handle always carries the final status,
// including TIMED_OUT, so callers can inspect it alongside the error.
func (e *Executor) Run(ctx context.Context, submit SubmitFunc, poll PollFunc, policy Policy) (Handle, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handle, err := submit(ctx)
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	if handle.Status == "" {
		handle.Status = StatusPending
	}

	logger.Info("task submitted",
		"task_id", handle.ProviderTaskID,
		"kind", handle.Kind,
		"interval", policy.Interval,
		"max_attempts", policy.MaxAttempts)

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			handle.Status = StatusTimedOut
			return handle, fmt.Errorf("%w: %v", ErrTimedOut, ctx.Err())
		case <-time.After(policy.Interval):
		}

		updated, err := poll(ctx, handle)
		if err != nil {
			// Transient provider noise ("not found yet" right after
			// submission, transport hiccups) consumes the attempt.
			logger.Warn("poll attempt failed",
				"task_id", handle.ProviderTaskID,
				"attempt", attempt,
				"max_attempts", policy.MaxAttempts,
				"error", err)
			continue
		}

		handle = updated
		logger.Info("poll status",
			"task_id", handle.ProviderTaskID,
			"status", handle.Status,
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts)

		switch handle.Status {
		case StatusSucceeded:
			return handle, nil
		case StatusFailed:
			return handle, fmt.Errorf("%w: task %s", ErrTaskFailed, handle.ProviderTaskID)
		}
	}

	last := handle.Status
	handle.Status = StatusTimedOut
	return handle, fmt.Errorf("%w: task %s still %s after %d attempts",
		ErrTimedOut, handle.ProviderTaskID, last, policy.MaxAttempts)
}
