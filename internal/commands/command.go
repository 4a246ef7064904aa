// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/notify"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/store"
)

// App bundles the two state machines and the backend they share.
// The dispatcher builds one per invocation and restores the session
// before any command runs.
type App struct {
	Session *session.Session
	Store   *store.Store
	Service service.Service

	// Notify is the notification hub the session reports through.
	// The ui command redirects it into the TUI.
	Notify *notify.Hub
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires an active session.
	// Commands like help, version, login, ping return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided; app is nil only for commands that touch
	// neither backend nor state (help, version).
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int
}

// taskByNumber resolves a 1-based position in the current sequence.
func taskByNumber(tasks []store.Task, num int) (store.Task, error) {
	if num < 1 || num > len(tasks) {
		return store.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}
