package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the logged-in username.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "taskflow whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	user, ok := app.Session.User()
	if !ok {
		fmt.Fprintln(out, "not logged in")
		return exitcode.Success
	}
	fmt.Fprintln(out, user.Username)
	if cfg.Debug {
		if exp, ok := app.Session.TokenExpiresAt(); ok {
			fmt.Fprintf(errOut, "token expires %s\n", exp.Format(time.RFC3339))
		}
	}
	return exitcode.Success
}
