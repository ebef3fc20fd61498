// Package cli turns command lines into command invocations.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ktask/internal/commands"
	"ktask/internal/config"
	"ktask/internal/exitcode"
	"ktask/internal/output"
	"ktask/internal/service"
	"ktask/internal/session"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	cfg      *config.Config
	sess     *session.Session
	factory  ServiceFactory
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher that runs commands against sess.
// A nil factory makes commands that need auth fail with a pre-flight
// check of the credential files. A nil logger discards logs.
func NewDispatcher(registry *commands.Registry, cfg *config.Config, sess *session.Session, factory ServiceFactory, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		registry: registry,
		cfg:      cfg,
		sess:     sess,
		factory:  factory,
		logger:   logger,
	}
}

// Run dispatches one tokenized command line.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		d.logger.Debug("unknown command", "command", cmdName)
		fmt.Fprintln(errOut, output.UnknownText)
		return exitcode.UserError
	}

	d.logger.Debug("dispatch", "command", cmd.Name(), "args", len(args)-1)
	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves
	cmd.RegisterFlags(fs)

	// Commands without flags take their words verbatim, so "mark -1" and
	// "todo -- read" reach the command untouched.
	positionalArgs := args
	if hasFlags(fs) {
		if code, ok := parseFlags(fs, args, errOut); !ok {
			return code
		}
		positionalArgs = fs.Args()
		if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
			return exitcode.UserError
		}
	}

	// Check auth requirements
	var svc service.Service
	if cmd.NeedsAuth() {
		if !d.cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: %s not found in %s (run: %s login)\n", config.OAuthClientFile, d.cfg.Dir, config.AppName)
			return exitcode.AuthError
		}
		if !d.cfg.HasToken() {
			fmt.Fprintf(errOut, "error: not logged in (run: %s login)\n", config.AppName)
			return exitcode.AuthError
		}
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.BackendError
		}
		var err error
		svc, err = d.factory(ctx, d.cfg)
		if err != nil {
			if errors.Is(err, service.ErrAuth) {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	code := cmd.Run(ctx, d.cfg, d.sess, svc, positionalArgs, out, errOut)
	if code != exitcode.Success {
		d.logger.Debug("command failed", "command", cmd.Name(), "code", code)
	}
	return code
}

func hasFlags(fs *flag.FlagSet) bool {
	n := 0
	fs.VisitAll(func(*flag.Flag) { n++ })
	return n > 0
}

// parseFlags reports flag errors the way the rest of the CLI does.
func parseFlags(fs *flag.FlagSet, args []string, errOut io.Writer) (int, bool) {
	err := fs.Parse(args)
	if err == nil {
		return exitcode.Success, true
	}
	errStr := err.Error()

	// Check for missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
		return exitcode.UserError, false
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError, false
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError, false
}
