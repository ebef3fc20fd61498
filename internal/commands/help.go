package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"ktask/internal/config"
	"ktask/internal/exitcode"
	"ktask/internal/service"
	"ktask/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	writeHelp(out, DefaultRegistry)
	return exitcode.Success
}

// writeHelp prints one block per command: usage, then synopsis and aliases.
func writeHelp(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Usage:")
	for _, cmd := range r.All() {
		fmt.Fprintf(w, "  %s\n", cmd.Usage())
		line := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (also: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "      %s\n", line)
	}
	fmt.Fprint(w, commonFlagsText)
}

const commonFlagsText = `
An empty line lists the tasks. Task numbers are the ones list shows.

Common flags (before the command, command line only):
  --config <dir>   Override config directory
  --data <file>    Override the task file
  --quiet          Suppress confirmations
  --debug          Print debug logs to stderr
`
