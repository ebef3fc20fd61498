package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ktask/internal/config"
	"ktask/internal/exitcode"
	"ktask/internal/output"
	"ktask/internal/service"
	"ktask/internal/session"
)

func init() {
	Register(&ByeCmd{})
}

// ByeCmd ends the interactive session.
type ByeCmd struct{}

func (c *ByeCmd) Name() string      { return "bye" }
func (c *ByeCmd) Aliases() []string { return []string{"exit", "quit"} }
func (c *ByeCmd) Synopsis() string  { return "End the session" }
func (c *ByeCmd) Usage() string     { return "bye" }
func (c *ByeCmd) NeedsAuth() bool   { return false }

func (c *ByeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ByeCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	sess.Close()
	fmt.Fprintln(out, output.ByeText)
	return exitcode.Success
}
