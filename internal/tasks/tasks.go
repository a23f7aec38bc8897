// Package tasks is the in-memory store for asynchronous summarization jobs.
// Finished tasks are kept for 24 hours so clients can poll at their own pace.
package tasks

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"finbrief/internal/logger"
	"finbrief/internal/metrics"
	"finbrief/internal/pipeline"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

const retention = 24 * time.Hour

// Task is one summarization job. Result is set only on completed, Error only
// on failed.
type Task struct {
	ID        string           `json:"id"`
	Status    Status           `json:"status"`
	Result    *pipeline.Result `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type Store struct {
	mu    sync.RWMutex
	tasks map[string]*Task
	stop  chan struct{}
}

func NewStore() *Store {
	s := &Store{
		tasks: make(map[string]*Task),
		stop:  make(chan struct{}),
	}

	// Sweep expired tasks every hour
	go s.sweepLoop()

	return s
}

// Create registers a new pending task and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()
	now := time.Now()

	s.mu.Lock()
	s.tasks[id] = &Task{ID: id, Status: StatusPending, CreatedAt: now, UpdatedAt: now}
	s.mu.Unlock()

	metrics.Global.IncrementTasksCreated()
	return id
}

// Get returns a copy of the task, so callers never see in-flight mutation.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

func (s *Store) SetProcessing(id string) {
	s.update(id, func(t *Task) {
		t.Status = StatusProcessing
	})
}

func (s *Store) SetCompleted(id string, result pipeline.Result) {
	s.update(id, func(t *Task) {
		t.Status = StatusCompleted
		t.Result = &result
		t.Error = ""
	})
}

func (s *Store) SetFailed(id string, err error) {
	s.update(id, func(t *Task) {
		t.Status = StatusFailed
		t.Error = err.Error()
	})
}

// Close stops the background sweeper.
func (s *Store) Close() {
	close(s.stop)
}

func (s *Store) update(id string, fn func(*Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return
	}
	fn(t)
	t.UpdatedAt = time.Now()
}

func (s *Store) sweepLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.sweep(time.Now()); n > 0 {
				logger.Info("expired tasks removed", "count", n)
			}
		case <-s.stop:
			return
		}
	}
}

// sweep removes tasks older than the retention window and reports how many.
func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, t := range s.tasks {
		if now.Sub(t.CreatedAt) > retention {
			delete(s.tasks, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.Global.AddTasksExpired(int64(removed))
	}
	return removed
}
