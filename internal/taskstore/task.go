// Package taskstore persists an ordered task list as a single JSON document.
//
// The document is a JSON array; array order is task order and a task's
// zero-based position is its only identifier:
//
//	[
//	    {
//	        "description": "buy milk",
//	        "done": false,
//	        "created": "2024-01-01T09:30:00Z"
//	    }
//	]
//
// Every operation reloads the whole document from disk and every mutation
// rewrites it. There is no locking: two writers racing a load-mutate-save
// cycle lose one of the updates.
package taskstore

import (
	"encoding/json"
	"fmt"
	"time"
)

// Task is a single entry in the task list.
type Task struct {
	Description string     `json:"description"`
	Done        bool       `json:"done"`
	Created     *Timestamp `json:"created,omitempty"`
}

// Timestamp is a creation time stored as text.
// Older files written by the Python scripts carry naive ISO-8601 values
// without an offset; those are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// NewTimestamp wraps t in UTC with the monotonic reading stripped, so a
// task compares equal to the same task read back from disk.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.Round(0).UTC()}
}

// MarshalJSON writes the timestamp as RFC 3339 with nanoseconds.
// Years outside [0,9999] are an error.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return ts.Time.MarshalJSON()
}

// UnmarshalJSON accepts RFC 3339 and naive ISO-8601 timestamps.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("created: %w", err)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("created: unrecognized timestamp %q", s)
}
