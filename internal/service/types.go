package service

import "errors"

var (
	// ErrListNotFound is returned when no remote list matches a name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned when several remote lists match a name.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrNotAuthenticated is returned when remote credentials are missing,
	// expired or revoked.
	ErrNotAuthenticated = errors.New("not logged in")
)

// Remote task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// RemoteTask represents a task held by a Remote.
type RemoteTask struct {
	ID     string
	Title  string
	Status string // StatusNeedsAction or StatusCompleted
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
