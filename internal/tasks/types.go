// ABOUTME: Task types and status state machine for the bounded-concurrency runner
// ABOUTME: pending → running → {completed | failed | cancelled}
package tasks

import (
	"context"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	// StatusPending indicates the task is created but not yet executing.
	StatusPending Status = "pending"
	// StatusRunning indicates the task is executing.
	StatusRunning Status = "running"
	// StatusCompleted indicates the task finished successfully.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the task finished with an error.
	StatusFailed Status = "failed"
	// StatusCancelled indicates the task observed cancellation before finishing.
	StatusCancelled Status = "cancelled"
)

// Func is a unit of work. Implementations should check ctx at their own
// suspension points; cancellation is advisory and does not interrupt
// in-flight network calls.
type Func func(ctx context.Context) (interface{}, error)

// Spec names a unit of work for batch execution.
type Spec struct {
	Name string
	Fn   Func
}

// Result is the terminal record of one task execution.
type Result struct {
	TaskID      string      `json:"task_id"`
	Name        string      `json:"name"`
	Status      Status      `json:"status"`
	Value       interface{} `json:"result,omitempty"`
	Err         error       `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	StartedAt   time.Time   `json:"started_at,omitempty"`
	CompletedAt time.Time   `json:"completed_at,omitempty"`
}

// Info is a point-in-time view of a tracked task.
type Info struct {
	TaskID      string    `json:"task_id"`
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}
