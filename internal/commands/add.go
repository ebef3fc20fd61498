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
	"ktask/internal/task"
)

func init() {
	Register(&TodoCmd{})
	Register(&DeadlineCmd{})
	Register(&EventCmd{})
}

// TodoCmd implements the todo command.
type TodoCmd struct{}

func (c *TodoCmd) Name() string      { return "todo" }
func (c *TodoCmd) Aliases() []string { return []string{"add"} }
func (c *TodoCmd) Synopsis() string  { return "Add a todo" }
func (c *TodoCmd) Usage() string     { return "todo <description...>" }
func (c *TodoCmd) NeedsAuth() bool   { return false }

func (c *TodoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TodoCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	desc, err := parser.Detail(args)
	if err != nil {
		return fail(errOut, err)
	}
	return runAdd(cfg, sess, task.NewTodo(desc), out, errOut)
}

// DeadlineCmd implements the deadline command.
type DeadlineCmd struct{}

func (c *DeadlineCmd) Name() string      { return "deadline" }
func (c *DeadlineCmd) Aliases() []string { return nil }
func (c *DeadlineCmd) Synopsis() string  { return "Add a task due on a date" }
func (c *DeadlineCmd) Usage() string     { return "deadline <description...> /by <yyyy-mm-dd>" }
func (c *DeadlineCmd) NeedsAuth() bool   { return false }

func (c *DeadlineCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeadlineCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	desc, due, err := parser.Deadline(args)
	if err != nil {
		return fail(errOut, err)
	}
	return runAdd(cfg, sess, task.NewDeadline(desc, due), out, errOut)
}

// EventCmd implements the event command.
type EventCmd struct{}

func (c *EventCmd) Name() string      { return "event" }
func (c *EventCmd) Aliases() []string { return nil }
func (c *EventCmd) Synopsis() string  { return "Add a task spanning a time window" }
func (c *EventCmd) Usage() string {
	return "event <description...> /from <yyyy-mm-dd> [HH:MM] /to <yyyy-mm-dd> [HH:MM]"
}
func (c *EventCmd) NeedsAuth() bool { return false }

func (c *EventCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EventCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	desc, start, end, err := parser.Event(args)
	if err != nil {
		return fail(errOut, err)
	}
	return runAdd(cfg, sess, task.NewEvent(desc, start, end), out, errOut)
}

// runAdd is the shared tail of todo, deadline and event.
func runAdd(cfg *config.Config, sess *session.Session, t task.Task, out, errOut io.Writer) int {
	added, err := sess.Add(t)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatAdded(out, added.Task, added.Count)
	}
	return exitcode.Success
}
