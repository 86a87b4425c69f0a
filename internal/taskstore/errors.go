package taskstore

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an index falls outside the current list.
var ErrNotFound = errors.New("task not found")

// ErrCorruptStore matches any *CorruptStoreError with errors.Is.
var ErrCorruptStore = errors.New("corrupt task store")

// CorruptStoreError reports a persisted document that cannot be decoded.
type CorruptStoreError struct {
	Path string // store file
	Err  error  // decode or validation failure
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt task store %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCorruptStore.
func (e *CorruptStoreError) Is(target error) bool {
	return target == ErrCorruptStore
}

func notFound(index, length int) error {
	return fmt.Errorf("%w: index %d out of range [0, %d)", ErrNotFound, index, length)
}
