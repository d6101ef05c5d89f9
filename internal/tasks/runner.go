// ABOUTME: Bounded-concurrency task runner with status tracking and best-effort cancellation
// ABOUTME: Failures are captured into results, never propagated to callers or sibling tasks
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxConcurrent bounds how many runner-issued tasks execute at once.
const DefaultMaxConcurrent = 10

// ErrTaskNotFound is returned for unknown task ids.
var ErrTaskNotFound = errors.New("task not found")

// Runner executes tasks with a fixed concurrency limit. Work beyond the
// limit queues until a slot frees. The runner owns its task registry for the
// process lifetime.
type Runner struct {
	sem chan struct{}

	mu      sync.Mutex
	tasks   map[string]*Info
	results map[string]Result
	cancels map[string]context.CancelFunc // live-task table
}

// NewRunner creates a Runner with the given concurrency limit.
func NewRunner(maxConcurrent int) *Runner {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Runner{
		sem:     make(chan struct{}, maxConcurrent),
		tasks:   make(map[string]*Info),
		results: make(map[string]Result),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Run executes fn immediately, queueing behind the concurrency limit if
// necessary, and returns its terminal result. Errors raised by fn (including
// panics) are captured into the result rather than propagated.
func (r *Runner) Run(name string, fn Func) Result {
	taskID := r.register(name)
	return r.runTask(taskID, name, fn)
}

// Start dispatches fn in the background and returns its task id right away.
// Progress is observable through Status, and the terminal result through
// ResultFor once the task finishes.
func (r *Runner) Start(name string, fn Func) string {
	taskID := r.register(name)
	go r.runTask(taskID, name, fn)
	return taskID
}

func (r *Runner) register(name string) string {
	taskID := uuid.New().String()
	r.mu.Lock()
	r.tasks[taskID] = &Info{
		TaskID:    taskID,
		Name:      name,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	r.mu.Unlock()
	return taskID
}

func (r *Runner) runTask(taskID, name string, fn Func) Result {
	r.mu.Lock()
	info := r.tasks[taskID]
	r.mu.Unlock()

	// Queue behind the concurrency limit
	r.sem <- struct{}{}
	defer func() { <-r.sem }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.mu.Lock()
	info.Status = StatusRunning
	info.StartedAt = time.Now()
	r.cancels[taskID] = cancel
	r.mu.Unlock()

	log.Printf("tasks: executing %q (id %s)", name, taskID)
	value, err := execute(ctx, fn)

	status := StatusCompleted
	switch {
	case err != nil && errors.Is(err, context.Canceled):
		status = StatusCancelled
	case err != nil:
		status = StatusFailed
		log.Printf("tasks: %q failed: %v", name, err)
	}

	result := Result{
		TaskID:      taskID,
		Name:        name,
		Status:      status,
		Value:       value,
		Err:         err,
		CreatedAt:   info.CreatedAt,
		StartedAt:   info.StartedAt,
		CompletedAt: time.Now(),
	}

	r.mu.Lock()
	delete(r.cancels, taskID)
	info.Status = status
	info.CompletedAt = result.CompletedAt
	r.results[taskID] = result
	r.mu.Unlock()

	return result
}

// execute runs fn, converting a panic into an error.
func execute(ctx context.Context, fn Func) (value interface{}, err error) {
	if fn == nil {
		return nil, fmt.Errorf("task has no function")
	}

	defer func() {
		if rec := recover(); rec != nil {
			value = nil
			err = fmt.Errorf("task panicked: %v", rec)
		}
	}()

	return fn(ctx)
}

// RunConcurrently executes every spec, bounded by the concurrency limit, and
// returns one result per spec in input order regardless of completion order.
// A failing spec yields a failed result without aborting the batch.
func (r *Runner) RunConcurrently(specs []Spec) []Result {
	results := make([]Result, len(specs))

	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		go func(slot int, s Spec) {
			defer wg.Done()
			results[slot] = r.Run(s.Name, s.Fn)
		}(i, spec)
	}
	wg.Wait()

	return results
}

// Status reports the current state of a task.
func (r *Runner) Status(taskID string) (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok := r.tasks[taskID]; ok {
		return info.Status, nil
	}
	return "", fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// ResultFor returns the terminal result of a finished task.
func (r *Runner) ResultFor(taskID string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if result, ok := r.results[taskID]; ok {
		return result, nil
	}
	return Result{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// Cancel signals a running task to stop. It returns true only when the task
// was in the live-task table and a cancellation signal was issued. The
// signal is advisory: work that does not check its context runs to
// completion, and in-flight network calls are not interrupted.
func (r *Runner) Cancel(taskID string) bool {
	r.mu.Lock()
	cancel, ok := r.cancels[taskID]
	r.mu.Unlock()

	if !ok {
		return false
	}
	cancel()
	return true
}

// Tasks lists every tracked task, newest first.
func (r *Runner) Tasks() []Info {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]Info, 0, len(r.tasks))
	for _, info := range r.tasks {
		infos = append(infos, *info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos
}
