package core

import (
	"context"
	"time"
)

// Task is a single to-do item managed by the host application.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskService manages the task list chat agents operate on behalf of.
// Implementations must be safe for concurrent use and return copies so
// callers cannot mutate stored state.
type TaskService interface {
	Create(ctx context.Context, title string) (Task, error)
	Get(ctx context.Context, id string) (Task, error)
	List(ctx context.Context) ([]Task, error)
	Complete(ctx context.Context, id string) (Task, error)
	Delete(ctx context.Context, id string) error
}
