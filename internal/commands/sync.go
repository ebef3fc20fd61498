package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"ktask/internal/config"
	"ktask/internal/exitcode"
	"ktask/internal/service"
	"ktask/internal/session"
)

func init() {
	Register(&SyncCmd{})
}

// SyncCmd mirrors the local list into a Google Tasks list.
// The remote list is replaced wholesale; the local list is never modified.
type SyncCmd struct {
	list string
}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return nil }
func (c *SyncCmd) Synopsis() string  { return "Mirror the task list to Google Tasks" }
func (c *SyncCmd) Usage() string     { return "sync [--list <list-name>]" }
func (c *SyncCmd) NeedsAuth() bool   { return true }

func (c *SyncCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.list, "list", "", "Google Tasks list name")
	fs.StringVar(&c.list, "l", "", "Google Tasks list name (shorthand)")
}

func (c *SyncCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	name := c.list
	if name == "" {
		name = cfg.Settings.SyncList
	}

	list, err := svc.ResolveList(ctx, name)
	if errors.Is(err, service.ErrNotFound) {
		list, err = svc.CreateList(ctx, name)
	}
	if err != nil {
		if errors.Is(err, service.ErrAmbiguous) {
			fmt.Fprintf(errOut, "error: more than one list is named %q\n", name)
			return exitcode.UserError
		}
		return remoteFailure(errOut, err)
	}

	remote, err := svc.ListTasks(ctx, list.ID)
	if err != nil {
		return remoteFailure(errOut, err)
	}
	for _, rt := range remote {
		if err := svc.DeleteTask(ctx, list.ID, rt.ID); err != nil && !errors.Is(err, service.ErrNotFound) {
			return remoteFailure(errOut, err)
		}
	}

	local := sess.List()
	for _, t := range local {
		if err := svc.CreateTask(ctx, list.ID, service.FromTask(t)); err != nil {
			return remoteFailure(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "WOOF! Synced %d tasks to %q\n", len(local), list.Title)
	}
	return exitcode.Success
}

// remoteFailure reports a Google Tasks error. Rejected credentials are an
// auth error, anything else a backend error.
func remoteFailure(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	if errors.Is(err, service.ErrAuth) {
		return exitcode.AuthError
	}
	return exitcode.BackendError
}
