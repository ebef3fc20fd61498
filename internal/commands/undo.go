package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"ktask/internal/config"
	"ktask/internal/exitcode"
	"ktask/internal/output"
	"ktask/internal/service"
	"ktask/internal/session"
	"ktask/internal/undo"
)

func init() {
	Register(&UndoCmd{})
}

// UndoCmd implements the undo command.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return nil }
func (c *UndoCmd) Synopsis() string  { return "Reverse the last add, mark, unmark or delete" }
func (c *UndoCmd) Usage() string     { return "undo" }
func (c *UndoCmd) NeedsAuth() bool   { return false }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	res, err := sess.Undo()
	if errors.Is(err, undo.ErrNothingToUndo) {
		fmt.Fprintln(out, output.CannotUndo)
		return exitcode.Success
	}
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatUndone(out, res)
	}
	return exitcode.Success
}
