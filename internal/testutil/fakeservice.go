// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tasker/internal/service"
	"tasker/internal/taskstore"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []taskstore.Task

	// Error injection for testing
	ListTasksErr    error
	AddTaskErr      error
	CompleteTaskErr error
	DeleteTaskErr   error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// Seed appends open tasks with the given descriptions.
func (f *FakeService) Seed(descriptions ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range descriptions {
		f.tasks = append(f.tasks, taskstore.Task{Description: d})
	}
}

// Tasks returns a copy of the current tasks.
func (f *FakeService) Tasks() []taskstore.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]taskstore.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]taskstore.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, task taskstore.Task) (taskstore.Task, error) {
	if f.AddTaskErr != nil {
		return taskstore.Task{}, f.AddTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return task, nil
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, index int) (taskstore.Task, error) {
	if f.CompleteTaskErr != nil {
		return taskstore.Task{}, f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.tasks) {
		return taskstore.Task{}, fmt.Errorf("%w: index %d", taskstore.ErrNotFound, index)
	}
	f.tasks[index].Done = true
	return f.tasks[index], nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, index int) (taskstore.Task, error) {
	if f.DeleteTaskErr != nil {
		return taskstore.Task{}, f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index >= len(f.tasks) {
		return taskstore.Task{}, fmt.Errorf("%w: index %d", taskstore.ErrNotFound, index)
	}
	removed := f.tasks[index]
	f.tasks = append(f.tasks[:index], f.tasks[index+1:]...)
	return removed, nil
}

// DefaultListID is the ID FakeRemote uses for the default list.
const DefaultListID = "@default"

// FakeRemote is an in-memory implementation of service.Remote for testing.
type FakeRemote struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.RemoteTask // listID -> tasks

	// Error injection for testing
	DefaultListErr error
	ListTasksErr   error
	CreateTaskErr  error
}

// NewFakeRemote creates a FakeRemote with an empty default list.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists: []service.TaskList{{ID: DefaultListID, Title: "My Tasks", IsDefault: true}},
		tasks: map[string][]service.RemoteTask{DefaultListID: nil},
	}
}

// AddList adds an empty named list.
func (f *FakeRemote) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	f.tasks[id] = nil
}

// AddTask adds an open task to a list.
func (f *FakeRemote) AddTask(listID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.RemoteTask{
		ID:     fmt.Sprintf("%s-%d", listID, len(f.tasks[listID])+1),
		Title:  title,
		Status: service.StatusNeedsAction,
	})
}

// Tasks returns a copy of a list's tasks.
func (f *FakeRemote) Tasks(listID string) []service.RemoteTask {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.RemoteTask, len(f.tasks[listID]))
	copy(result, f.tasks[listID])
	return result
}

// DefaultList implements service.Remote.
func (f *FakeRemote) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, service.ErrListNotFound
}

// ResolveList implements service.Remote.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))
	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, service.ErrListNotFound
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, service.ErrAmbiguousList
	}
}

// ListTasks implements service.Remote.
func (f *FakeRemote) ListTasks(ctx context.Context, listID string) ([]service.RemoteTask, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	_, ok := f.tasks[listID]
	f.mu.RUnlock()
	if !ok {
		return nil, service.ErrListNotFound
	}
	return f.Tasks(listID), nil
}

// CreateTask implements service.Remote.
func (f *FakeRemote) CreateTask(ctx context.Context, listID, title string, completed bool) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[listID]; !ok {
		return service.ErrListNotFound
	}
	status := service.StatusNeedsAction
	if completed {
		status = service.StatusCompleted
	}
	f.tasks[listID] = append(f.tasks[listID], service.RemoteTask{
		ID:     fmt.Sprintf("%s-%d", listID, len(f.tasks[listID])+1),
		Title:  title,
		Status: status,
	})
	return nil
}
