package tasks

import "time"

// Kind identifies the class of generation work a task performs.
type Kind string

const (
	KindImage Kind = "IMAGE"
	KindVideo Kind = "VIDEO"
)

// Status is the lifecycle state of a remote task.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
	StatusTimedOut  Status = "TIMED_OUT"
)

// Terminal reports whether the provider will make no further progress
// on a task in this status. TIMED_OUT is terminal from the caller's
// side only; the provider may still finish the work.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusTimedOut
}

// Handle represents one outstanding unit of asynchronous work at a
// remote provider. It is created by a submit call and updated only by
// the executor driving it.
type Handle struct {
	ProviderTaskID string    `json:"provider_task_id"`
	Kind           Kind      `json:"kind"`
	Status         Status    `json:"status"`
	SubmittedAt    time.Time `json:"submitted_at"`

	// ResultURL is set by the provider once the task has succeeded.
	ResultURL string `json:"result_url,omitempty"`
}

// Policy bounds how long an executor waits for a task to finish.
// Interval is spent suspended before every poll, so a run spends at
// most MaxAttempts*Interval waiting. Immutable once constructed.
type Policy struct {
	Interval    time.Duration
	MaxAttempts int
}
