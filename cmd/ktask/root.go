package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"ktask/internal/backend/googletasks"
	"ktask/internal/cli"
	"ktask/internal/commands"
	"ktask/internal/config"
	"ktask/internal/output"
	"ktask/internal/service"
	"ktask/internal/session"
	"ktask/internal/storage"
	"ktask/internal/tasklist"
)

type rootOptions struct {
	configDir string
	dataFile  string
	quiet     bool
	debug     bool
}

// newRootCommand builds the ktask command. With arguments it runs a single
// command line and stores its exit code in code; without, it starts the
// interactive loop on stdin.
func newRootCommand(stdin io.Reader, stdout, stderr io.Writer, code *int) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "ktask [flags] [command [args...]]",
		Short: "Kyle, a task-tracking dog for the terminal",
		Long: `ktask keeps a list of todos, deadlines and events.

Run it without a command for an interactive session, or pass one command
line to run it and exit. Run "ktask help" for the command list.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       commands.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, opts.debug)

			cfg, err := config.Load(opts.configDir)
			if err != nil {
				return err
			}
			cfg.Quiet = opts.quiet
			cfg.Debug = opts.debug
			if opts.dataFile != "" {
				abs, err := filepath.Abs(opts.dataFile)
				if err != nil {
					return err
				}
				cfg.Settings.DataFile = abs
			}

			sess, err := openSession(cfg, logger)
			if err != nil {
				return err
			}

			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cfg, sess, newService, logger)
			ctx := cmd.Context()

			if len(args) > 0 {
				*code = dispatcher.Run(ctx, args, stdout, stderr)
				return nil
			}

			output.Greeting(stdout)
			fmt.Fprintln(stdout, output.Separator)
			if err := dispatcher.Loop(ctx, stdin, stdout); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	// Everything after the first non-flag word belongs to the task command.
	cmd.Flags().SetInterspersed(false)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config", "", "config directory (default $XDG_CONFIG_HOME/ktask)")
	flags.StringVar(&opts.dataFile, "data", "", "task file (default <config>/tasks.txt)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress confirmations")
	flags.BoolVar(&opts.debug, "debug", false, "print debug logs to stderr")

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

// openSession loads the task file and wraps it in a session that saves
// back to the same file.
func openSession(cfg *config.Config, logger *slog.Logger) (*session.Session, error) {
	file := storage.NewFile(cfg.DataPath())
	tasks, err := file.Load()
	if err != nil {
		return nil, err
	}
	store, err := tasklist.FromTasks(cfg.Settings.Capacity, tasks)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file.Path, err)
	}
	logger.Debug("task list loaded", "path", file.Path, "tasks", store.Len(), "capacity", store.Cap())
	return session.New(store, session.WithSaver(file), session.WithLogger(logger)), nil
}

func newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	return googletasks.New(ctx, cfg)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
