// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasker/internal/taskstore"
)

// Status markers shown before each description.
const (
	MarkDone = "[x]"
	MarkOpen = "[ ]"
)

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  {MARK} {DESCRIPTION}\n" (4-wide right-aligned number, two spaces, status mark, description)
func FormatTask(w io.Writer, num int, task taskstore.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Mark(task), NormalizeDescription(task.Description))
}

// Mark returns the status marker for task.
func Mark(task taskstore.Task) string {
	if task.Done {
		return MarkDone
	}
	return MarkOpen
}

// NormalizeDescription normalizes a task description for display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	if strings.TrimSpace(desc) == "" {
		return "(untitled)"
	}
	return desc
}
