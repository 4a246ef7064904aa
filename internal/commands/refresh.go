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
	Register(&RefreshCmd{})
}

// RefreshCmd exchanges the stored token for a fresh one. A failed
// refresh always ends the session: an invalid token is
// indistinguishable from no session.
type RefreshCmd struct{}

func (c *RefreshCmd) Name() string      { return "refresh" }
func (c *RefreshCmd) Aliases() []string { return nil }
func (c *RefreshCmd) Synopsis() string  { return "Refresh the session token" }
func (c *RefreshCmd) Usage() string     { return "taskflow refresh [common flags]" }
func (c *RefreshCmd) NeedsAuth() bool   { return true }

func (c *RefreshCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RefreshCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	if err := app.Session.RefreshToken(ctx); err != nil {
		fmt.Fprintf(errOut, "error: token refresh failed, logged out: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
