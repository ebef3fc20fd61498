package commands

import (
	"context"
	"flag"
	"io"

	"ktask/internal/config"
	"ktask/internal/exitcode"
	"ktask/internal/output"
	"ktask/internal/parser"
	"ktask/internal/service"
	"ktask/internal/session"
)

func init() {
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a task" }
func (c *DeleteCmd) Usage() string     { return "delete <n>" }
func (c *DeleteCmd) NeedsAuth() bool   { return false }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	i, err := parser.Index(args)
	if err != nil {
		return fail(errOut, err)
	}
	removed, err := sess.Delete(i)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatRemoved(out, removed.Task, removed.Count)
	}
	return exitcode.Success
}
