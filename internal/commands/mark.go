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
	Register(&MarkCmd{})
	Register(&UnmarkCmd{})
}

// MarkCmd implements the mark command.
type MarkCmd struct{}

func (c *MarkCmd) Name() string      { return "mark" }
func (c *MarkCmd) Aliases() []string { return []string{"done"} }
func (c *MarkCmd) Synopsis() string  { return "Mark a task as done" }
func (c *MarkCmd) Usage() string     { return "mark <n>" }
func (c *MarkCmd) NeedsAuth() bool   { return false }

func (c *MarkCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MarkCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	i, err := parser.Index(args)
	if err != nil {
		return fail(errOut, err)
	}
	t, err := sess.Mark(i)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatMarked(out, t)
	}
	return exitcode.Success
}

// UnmarkCmd implements the unmark command.
type UnmarkCmd struct{}

func (c *UnmarkCmd) Name() string      { return "unmark" }
func (c *UnmarkCmd) Aliases() []string { return nil }
func (c *UnmarkCmd) Synopsis() string  { return "Mark a task as not done yet" }
func (c *UnmarkCmd) Usage() string     { return "unmark <n>" }
func (c *UnmarkCmd) NeedsAuth() bool   { return false }

func (c *UnmarkCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UnmarkCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	i, err := parser.Index(args)
	if err != nil {
		return fail(errOut, err)
	}
	t, err := sess.Unmark(i)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatUnmarked(out, t)
	}
	return exitcode.Success
}
