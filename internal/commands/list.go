package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd prints the task list. The collection was loaded when the
// session was restored; this command only renders the snapshot.
type ListCmd struct {
	openOnly      bool
	completedOnly bool
}

// SetFilters sets the filter flag values (for testing).
func (c *ListCmd) SetFilters(open, completed bool) {
	c.openOnly = open
	c.completedOnly = completed
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskflow list [common flags] [--open | --completed]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.openOnly, "open", false, "")
	fs.BoolVar(&c.completedOnly, "completed", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	if c.openOnly && c.completedOnly {
		fmt.Fprintln(errOut, "error: cannot use both --open and --completed")
		return exitcode.UserError
	}
	if err := app.Store.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}

	// Numbering always follows the full sequence so task references
	// stay stable across filters.
	for i, task := range app.Store.Tasks() {
		if c.openOnly && task.Completed {
			continue
		}
		if c.completedOnly && !task.Completed {
			continue
		}
		output.FormatTask(out, i+1, task)
	}
	return exitcode.Success
}
