// Package filestore implements service.Service over a file-backed task store.
package filestore

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"tasker/internal/taskstore"
)

// Service implements service.Service using a taskstore.Store.
type Service struct {
	store *taskstore.Store
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp new tasks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New opens the store at path. The logger attached to ctx traces store access.
func New(ctx context.Context, path string, opts ...Option) (*Service, error) {
	store, err := taskstore.Open(path, taskstore.WithLogger(*zerolog.Ctx(ctx)))
	if err != nil {
		return nil, err
	}

	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the backing store file.
func (s *Service) Path() string {
	return s.store.Path()
}

// ListTasks implements service.Service.
func (s *Service) ListTasks(ctx context.Context) ([]taskstore.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.List()
}

// AddTask implements service.Service.
// Tasks without a creation time are stamped with the current time.
func (s *Service) AddTask(ctx context.Context, task taskstore.Task) (taskstore.Task, error) {
	if err := ctx.Err(); err != nil {
		return taskstore.Task{}, err
	}
	if task.Created == nil {
		task.Created = taskstore.NewTimestamp(s.now())
	}
	return s.store.Append(task)
}

// CompleteTask implements service.Service.
func (s *Service) CompleteTask(ctx context.Context, index int) (taskstore.Task, error) {
	if err := ctx.Err(); err != nil {
		return taskstore.Task{}, err
	}
	return s.store.MarkDone(index)
}

// DeleteTask implements service.Service.
func (s *Service) DeleteTask(ctx context.Context, index int) (taskstore.Task, error) {
	if err := ctx.Err(); err != nil {
		return taskstore.Task{}, err
	}
	return s.store.Remove(index)
}
