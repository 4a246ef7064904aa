package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskflow/internal/apierr"
	"taskflow/internal/config"
	"taskflow/internal/exitcode"
)

// EnvPassword supplies the password when it is not given as an argument,
// keeping it out of shell history.
const EnvPassword = "TASKFLOW_PASSWORD"

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in to the Taskflow backend" }
func (c *LoginCmd) Usage() string     { return "taskflow login <username> [<password>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	username, password, code := credentialArgs(args, errOut)
	if code != exitcode.Success {
		return code
	}

	if app.Session.Active() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	if err := app.Session.Login(ctx, username, password); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", loginMessage(err))
		return authExitCode(err)
	}
	return exitcode.Success
}

// credentialArgs extracts username and password from args, falling back
// to TASKFLOW_PASSWORD for the password.
func credentialArgs(args []string, errOut io.Writer) (string, string, int) {
	var username, password string
	switch len(args) {
	case 2:
		username, password = args[0], args[1]
	case 1:
		username = args[0]
		password = os.Getenv(EnvPassword)
		if password == "" {
			fmt.Fprintf(errOut, "error: password required (argument or %s)\n", EnvPassword)
			return "", "", exitcode.UserError
		}
	default:
		fmt.Fprintln(errOut, "error: username required")
		return "", "", exitcode.UserError
	}
	return username, password, exitcode.Success
}

func loginMessage(err error) string {
	switch apierr.KindOf(err) {
	case apierr.Unauthorized:
		return "Invalid username or password. Please check your credentials and try again."
	case apierr.RateLimited:
		return "Too many login attempts. Please wait a moment before trying again."
	case apierr.NetworkFailure:
		return "Network error. Please check your connection and try again."
	case apierr.ValidationFailed:
		return err.Error()
	default:
		return "Login failed. Please try again."
	}
}

// authExitCode maps a failed auth call to the process exit code.
func authExitCode(err error) int {
	switch apierr.KindOf(err) {
	case apierr.Unauthorized, apierr.ValidationFailed, apierr.Conflict:
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}
