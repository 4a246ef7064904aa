package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles completion on a task by its list number.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskflow done [common flags] <n>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	task, code := resolveTaskArg(app, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := app.Store.ToggleComplete(ctx, task.ID); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// resolveTaskArg parses the single numeric task reference and resolves
// it against the current snapshot.
func resolveTaskArg(app *App, args []string, errOut io.Writer) (taskRef, int) {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task number required")
		return taskRef{}, exitcode.UserError
	}
	num, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid task number: %s\n", args[0])
		return taskRef{}, exitcode.UserError
	}
	task, err := taskByNumber(app.Store.Tasks(), num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return taskRef{}, exitcode.UserError
	}
	return taskRef{ID: task.ID, Num: num}, exitcode.Success
}

// taskRef is a resolved task reference.
type taskRef struct {
	ID  string
	Num int
}
