package taskstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store is a task list persisted in one file.
// It holds no tasks in memory between calls.
type Store struct {
	path   string
	logger zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger traces loads and saves at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open returns a store backed by path, creating the file with an empty
// list (and its parent directory) if it does not exist.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("task store path is empty")
	}

	s := &Store{
		path:   path,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.ensure(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// List returns every task in storage order.
func (s *Store) List() ([]Task, error) {
	return s.load()
}

// Append adds task at the end of the list and returns it as stored.
func (s *Store) Append(task Task) (Task, error) {
	tasks, err := s.load()
	if err != nil {
		return Task{}, err
	}

	tasks = append(tasks, task)
	if err := s.save(tasks); err != nil {
		return Task{}, err
	}

	s.logger.Debug().
		Int("index", len(tasks)-1).
		Msg("appended task")
	return task, nil
}

// MarkDone sets done on the task at index and returns the updated task.
func (s *Store) MarkDone(index int) (Task, error) {
	tasks, err := s.load()
	if err != nil {
		return Task{}, err
	}
	if index < 0 || index >= len(tasks) {
		return Task{}, notFound(index, len(tasks))
	}

	tasks[index].Done = true
	if err := s.save(tasks); err != nil {
		return Task{}, err
	}

	s.logger.Debug().
		Int("index", index).
		Msg("marked task done")
	return tasks[index], nil
}

// Remove deletes the task at index and returns it.
// Every later task moves down one position.
func (s *Store) Remove(index int) (Task, error) {
	tasks, err := s.load()
	if err != nil {
		return Task{}, err
	}
	if index < 0 || index >= len(tasks) {
		return Task{}, notFound(index, len(tasks))
	}

	removed := tasks[index]
	tasks = append(tasks[:index], tasks[index+1:]...)
	if err := s.save(tasks); err != nil {
		return Task{}, err
	}

	s.logger.Debug().
		Int("index", index).
		Int("remaining", len(tasks)).
		Msg("removed task")
	return removed, nil
}

// ensure creates an empty document when the file is missing.
func (s *Store) ensure() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat task store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create task store dir: %w", err)
	}

	s.logger.Debug().
		Str("path", s.path).
		Msg("creating empty task store")
	return s.save(nil)
}

func (s *Store) load() ([]Task, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read task store: %w", err)
	}

	tasks, err := decode(data)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("path", s.path).
			Msg("task store is corrupt")
		return nil, &CorruptStoreError{Path: s.path, Err: err}
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("count", len(tasks)).
		Msg("loaded tasks")
	return tasks, nil
}

func (s *Store) save(tasks []Task) error {
	data, err := encode(tasks)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write task store: %w", err)
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("count", len(tasks)).
		Msg("saved tasks")
	return nil
}
