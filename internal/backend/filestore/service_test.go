package filestore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tasker/internal/backend/filestore"
	"tasker/internal/service"
	"tasker/internal/taskstore"
)

var _ service.Service = (*filestore.Service)(nil)

func TestAddTask_StampsCreated(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc, err := filestore.New(context.Background(), filepath.Join(t.TempDir(), "tasks.json"),
		filestore.WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	task, err := svc.AddTask(context.Background(), taskstore.Task{Description: "buy milk"})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.Created == nil || !task.Created.Equal(fixed) {
		t.Errorf("expected created %v, got %v", fixed, task.Created)
	}

	tasks, err := svc.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Created == nil || !tasks[0].Created.Equal(fixed) {
		t.Errorf("stamped time not persisted: %+v", tasks)
	}
}

func TestAddTask_KeepsCallerCreated(t *testing.T) {
	given := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	svc, err := filestore.New(context.Background(), filepath.Join(t.TempDir(), "tasks.json"),
		filestore.WithClock(func() time.Time { return time.Now() }))
	if err != nil {
		t.Fatal(err)
	}

	task, err := svc.AddTask(context.Background(), taskstore.Task{
		Description: "old",
		Created:     taskstore.NewTimestamp(given),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !task.Created.Equal(given) {
		t.Errorf("expected caller timestamp to be kept, got %v", task.Created)
	}
}

func TestOperations_IndexErrors(t *testing.T) {
	svc, err := filestore.New(context.Background(), filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := svc.CompleteTask(ctx, 0); !errors.Is(err, taskstore.ErrNotFound) {
		t.Errorf("CompleteTask: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.DeleteTask(ctx, 0); !errors.Is(err, taskstore.ErrNotFound) {
		t.Errorf("DeleteTask: expected ErrNotFound, got %v", err)
	}

	if _, err := svc.AddTask(ctx, taskstore.Task{Description: "a"}); err != nil {
		t.Fatal(err)
	}
	done, err := svc.CompleteTask(ctx, 0)
	if err != nil || !done.Done {
		t.Errorf("CompleteTask: %+v, %v", done, err)
	}
	removed, err := svc.DeleteTask(ctx, 0)
	if err != nil || removed.Description != "a" {
		t.Errorf("DeleteTask: %+v, %v", removed, err)
	}
}

func TestCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	svc, err := filestore.New(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.AddTask(ctx, taskstore.Task{Description: "never"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	tasks, err := svc.ListTasks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("cancelled add must not write, got %d tasks", len(tasks))
	}
	if svc.Path() != path {
		t.Errorf("expected path %s, got %s", path, svc.Path())
	}
}
