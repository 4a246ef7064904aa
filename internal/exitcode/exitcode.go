// Package exitcode defines process exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a usage error (bad args, unknown command,
	// task number out of range).
	UserError = 1

	// AuthError indicates a rejected credential or a missing session.
	AuthError = 2

	// BackendError indicates a backend, API, or network failure.
	BackendError = 3
)
