// Package service defines the backend-agnostic interfaces the front-ends use.
package service

import (
	"context"

	"tasker/internal/taskstore"
)

// Service defines the task list operations shared by the CLI, HTTP API and TUI.
// Indices are zero-based positions in the current list.
type Service interface {
	// ListTasks returns every task in storage order.
	ListTasks(ctx context.Context) ([]taskstore.Task, error)

	// AddTask appends task and returns it as stored.
	AddTask(ctx context.Context, task taskstore.Task) (taskstore.Task, error)

	// CompleteTask marks the task at index done.
	// Returns an error matching taskstore.ErrNotFound if index is out of range.
	CompleteTask(ctx context.Context, index int) (taskstore.Task, error)

	// DeleteTask removes the task at index and returns it.
	// Returns an error matching taskstore.ErrNotFound if index is out of range.
	DeleteTask(ctx context.Context, index int) (taskstore.Task, error)
}

// Remote defines the operations needed to mirror tasks into a hosted task list.
// Commands never import a provider SDK directly.
type Remote interface {
	// DefaultList returns the account's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns an error matching ErrListNotFound or ErrAmbiguousList.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListTasks returns all tasks in a list, completed ones included.
	ListTasks(ctx context.Context, listID string) ([]RemoteTask, error)

	// CreateTask creates a task, optionally already completed.
	CreateTask(ctx context.Context, listID, title string, completed bool) error
}
