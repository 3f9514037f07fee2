package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Runner errors
var (
	ErrQueueFull     = errors.New("task queue is full, try again later")
	ErrTaskNotFound  = errors.New("task not found")
	ErrRunnerStopped = errors.New("task runner is stopped")
)

// Snapshot is the observable state of a submitted task.
type Snapshot struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"`
	Status Status    `json:"status"`
	Error  string    `json:"error,omitempty"`
}

// Runner processes submitted tasks on one worker goroutine. One worker
// is deliberate: the data tree has a single writer, so tasks must
// never mutate it concurrently with each other.
type Runner struct {
	logger   *slog.Logger
	tasks    chan Task
	mu       sync.Mutex
	statuses map[uuid.UUID]*Snapshot
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopped  bool
}

// NewRunner creates a runner with the given queue capacity.
func NewRunner(queueSize int, logger *slog.Logger) *Runner {
	if queueSize <= 0 {
		queueSize = 16
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:   logger.With(slog.String("component", "task_runner")),
		tasks:    make(chan Task, queueSize),
		statuses: map[uuid.UUID]*Snapshot{},
	}
}

// Start launches the worker. Call Stop to drain and shut down.
func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go r.work(ctx)
}

// Stop cancels the worker context and waits for the in-flight task.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// Submit queues a task and records it as pending.
func (r *Runner) Submit(t Task) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return ErrRunnerStopped
	}
	r.statuses[t.ID()] = &Snapshot{ID: t.ID(), Type: t.Type(), Status: StatusPending}
	r.mu.Unlock()

	select {
	case r.tasks <- t:
		return nil
	default:
		r.setStatus(t.ID(), StatusFailed, ErrQueueFull.Error())
		return ErrQueueFull
	}
}

// Status returns the snapshot for a submitted task.
func (r *Runner) Status(id uuid.UUID) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap, ok := r.statuses[id]
	if !ok {
		return Snapshot{}, ErrTaskNotFound
	}
	return *snap, nil
}

func (r *Runner) work(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-r.tasks:
			r.setStatus(t.ID(), StatusProcessing, "")
			r.logger.Info("task started", "task_id", t.ID(), "task_type", t.Type())

			if err := t.Execute(ctx); err != nil {
				r.setStatus(t.ID(), StatusFailed, err.Error())
				r.logger.Error("task execution failed",
					"task_id", t.ID(),
					"task_type", t.Type(),
					"error", err)
				continue
			}
			r.setStatus(t.ID(), StatusCompleted, "")
			r.logger.Info("task completed", "task_id", t.ID(), "task_type", t.Type())
		}
	}
}

func (r *Runner) setStatus(id uuid.UUID, status Status, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap, ok := r.statuses[id]; ok {
		snap.Status = status
		snap.Error = errMsg
	}
}
