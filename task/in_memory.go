package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/foundryrelay/core"
)

// ErrNotFound is returned when a task id is unknown.
var ErrNotFound = errors.New("task not found")

// ErrEmptyTitle is returned by Create for blank titles.
var ErrEmptyTitle = errors.New("task title must not be empty")

// Options configures an InMemoryService.
type Options struct {
	// Now is the clock used for CreatedAt / UpdatedAt (defaults to time.Now).
	Now func() time.Time
	// NewID generates task identifiers (defaults to uuid.NewString).
	NewID func() string
}

// InMemoryService is a volatile core.TaskService storing tasks in a process
// local map. It is safe for concurrent access and best suited for tests or
// ephemeral demo hosts. Returned tasks are copies.
type InMemoryService struct {
	mu    sync.RWMutex
	tasks map[string]core.Task
	opts  Options
}

// NewInMemoryService constructs an empty in-memory task service.
func NewInMemoryService(optFns ...func(o *Options)) *InMemoryService {
	opts := Options{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryService{tasks: make(map[string]core.Task), opts: opts}
}

// Create stores a new, open task.
func (s *InMemoryService) Create(_ context.Context, title string) (core.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return core.Task{}, ErrEmptyTitle
	}
	now := s.opts.Now()
	t := core.Task{
		ID:        s.opts.NewID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[t.ID]; exists {
		return core.Task{}, fmt.Errorf("task id %q already exists", t.ID)
	}
	s.tasks[t.ID] = t
	return t, nil
}

// Get returns a task by id.
func (s *InMemoryService) Get(_ context.Context, id string) (core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return core.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// List returns all tasks ordered by creation time (oldest first).
func (s *InMemoryService) List(_ context.Context) ([]core.Task, error) {
	s.mu.RLock()
	out := make([]core.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Complete marks a task as done. Completing an already completed task is a no-op.
func (s *InMemoryService) Complete(_ context.Context, id string) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return core.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if t.Completed {
		return t, nil
	}
	t.Completed = true
	t.UpdatedAt = s.opts.Now()
	s.tasks[id] = t
	return t, nil
}

// Delete removes a task.
func (s *InMemoryService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.tasks, id)
	return nil
}
