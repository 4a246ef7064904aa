package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&PingCmd{})
}

// PingCmd checks backend liveness. Needs no session.
type PingCmd struct{}

func (c *PingCmd) Name() string      { return "ping" }
func (c *PingCmd) Aliases() []string { return []string{"health"} }
func (c *PingCmd) Synopsis() string  { return "Check backend liveness" }
func (c *PingCmd) Usage() string     { return "taskflow ping [common flags]" }
func (c *PingCmd) NeedsAuth() bool   { return false }

func (c *PingCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PingCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	h, err := app.Service.Ping(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend unreachable: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%s\n", h.Status)
	}
	return exitcode.Success
}
