// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, task not found).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// StoreError indicates the task store could not be read, written or decoded.
	StoreError = 3

	// RemoteError indicates a Google Tasks API or network error.
	RemoteError = 4

	// ServerError indicates the HTTP server could not start or stop cleanly.
	ServerError = 5
)
