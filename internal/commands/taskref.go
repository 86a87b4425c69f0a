package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"tasker/internal/exitcode"
	"tasker/internal/taskstore"
)

// ErrTaskNumRequired indicates no task number was provided.
var ErrTaskNumRequired = errors.New("task number required")

// ParseTaskNum parses the 1-based task number shown by `tasker list`.
// Range checking is left to the store so that 0 and numbers past the end
// report the same "task not found" error.
func ParseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskNumRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := args[0]
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	num, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// reportTaskRefError prints a ParseTaskNum failure.
func reportTaskRefError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskNumRequired) {
		fmt.Fprintln(errOut, "error: task number required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

// reportStoreError prints a service failure and returns its exit code.
// num is the task number the user gave, or 0 when none applies.
func reportStoreError(errOut io.Writer, num int, err error) int {
	switch {
	case errors.Is(err, taskstore.ErrNotFound):
		fmt.Fprintf(errOut, "error: task not found: %d\n", num)
		return exitcode.UserError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	case errors.Is(err, taskstore.ErrCorruptStore):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StoreError
	}
}
