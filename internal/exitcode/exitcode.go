// Package exitcode defines exit codes for the todo CLI.
package exitcode

const (
	Success = 0

	// UserError indicates bad arguments, an empty task or an unknown task.
	UserError = 1

	// BackendError indicates the API was unreachable or failed.
	BackendError = 3
)
