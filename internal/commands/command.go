// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"ktask/internal/config"
	"ktask/internal/exitcode"
	"ktask/internal/output"
	"ktask/internal/service"
	"ktask/internal/session"
)

// Command defines the interface for task commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command talks to Google Tasks.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	// Commands without flags receive their arguments untouched.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg and sess are always provided.
	// svc is nil if NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int
}

// fail reports err in the user's terms and returns the user error code.
func fail(errOut io.Writer, err error) int {
	output.FormatError(errOut, err)
	return exitcode.UserError
}
