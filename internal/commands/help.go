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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskflow help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, app *App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskflow                                      List all tasks
  taskflow list [common flags] [--open | --completed]
  taskflow add [common flags] [--desc <text>] <title...>
  taskflow done [common flags] <n>
  taskflow edit [common flags] <n> <title...>
  taskflow rm [common flags] <n>
  taskflow show [common flags] <n>
  taskflow login [common flags] <username> [<password>]
  taskflow register [common flags] <username> [<password>]
  taskflow logout [common flags]
  taskflow whoami [common flags]
  taskflow refresh [common flags]
  taskflow ping [common flags]
  taskflow ui [common flags]
  taskflow help
  taskflow version

Common flags:
  --config <dir>   Override config directory
  --api <env|url>  API environment (local, production) or base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TASKFLOW_API_URL   API base URL (overridden by --api)
  TASKFLOW_PASSWORD  Password for login/register when omitted from args
`
