package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/apierr"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command. Registration implicitly
// logs the new user in.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string     { return "taskflow register <username> [<password>]" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	username, password, code := credentialArgs(args, errOut)
	if code != exitcode.Success {
		return code
	}

	if app.Session.Active() {
		fmt.Fprintln(errOut, "error: already logged in (run: taskflow logout)")
		return exitcode.UserError
	}

	if err := app.Session.Register(ctx, username, password); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", registerMessage(err))
		return authExitCode(err)
	}
	return exitcode.Success
}

func registerMessage(err error) string {
	switch apierr.KindOf(err) {
	case apierr.Conflict:
		return "Username already exists. Please choose a different username."
	case apierr.ValidationFailed:
		return "Invalid input. Please check that your password is at least 8 characters with letters and numbers."
	case apierr.RateLimited:
		return "Too many registration attempts. Please wait a moment before trying again."
	case apierr.NetworkFailure:
		return "Network error. Please check your connection and try again."
	default:
		return "Registration failed. Please try again."
	}
}
