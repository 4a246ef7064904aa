package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/store"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints one task's full record, fetched fresh from the
// backend rather than from the local snapshot.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show a task's details" }
func (c *ShowCmd) Usage() string     { return "taskflow show [common flags] <n>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	task, code := resolveTaskArg(app, args, errOut)
	if code != exitcode.Success {
		return code
	}

	todo, err := app.Service.GetTodo(ctx, app.Session.Token(), task.ID)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	output.FormatTaskDetail(out, store.Task{
		ID:          todo.ID,
		Text:        todo.Title,
		Description: todo.Description,
		Completed:   todo.Done(),
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	})
	return exitcode.Success
}
