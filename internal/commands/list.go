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
	Register(&ListCmd{})
	Register(&FindCmd{})
}

// ListCmd implements the list command.
// The dispatcher also runs it for an empty command line.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "list" }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	output.FormatList(out, sess.List())
	return exitcode.Success
}

// FindCmd implements the find command.
type FindCmd struct{}

func (c *FindCmd) Name() string      { return "find" }
func (c *FindCmd) Aliases() []string { return nil }
func (c *FindCmd) Synopsis() string  { return "List tasks whose description contains a keyword" }
func (c *FindCmd) Usage() string     { return "find <keyword...>" }
func (c *FindCmd) NeedsAuth() bool   { return false }

func (c *FindCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *FindCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, svc service.Service, args []string, out, errOut io.Writer) int {
	keyword, err := parser.Keyword(args)
	if err != nil {
		return fail(errOut, err)
	}
	output.FormatMatches(out, sess.Find(keyword))
	return exitcode.Success
}
