package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ktask/internal/cli"
	"ktask/internal/commands"
	"ktask/internal/config"
	"ktask/internal/exitcode"
	"ktask/internal/output"
	"ktask/internal/service"
	"ktask/internal/session"
	"ktask/internal/tasklist"
	"ktask/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// newDispatcher wires a dispatcher around an empty, unbounded session.
func newDispatcher(t *testing.T, factory cli.ServiceFactory) (*cli.Dispatcher, *config.Config, *session.Session) {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config.New() err = %v", err)
	}
	sess := session.New(tasklist.New(0))
	return cli.NewDispatcher(commands.DefaultRegistry, cfg, sess, factory, nil), cfg, sess
}

// writeCredentials creates placeholder OAuth files so pre-flight checks pass.
func writeCredentials(t *testing.T, dir string) {
	t.Helper()
	for _, name := range []string{config.OAuthClientFile, config.TokenFile} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher, _, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"blah"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr.String() != output.UnknownText+"\n" {
		t.Errorf("expected unknown command reply, got %q", stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher, _, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr.String() != output.UnknownText+"\n" {
		t.Errorf("expected unknown command reply, got %q", stderr.String())
	}
}

func TestDispatcher_EmptyLineLists(t *testing.T) {
	dispatcher, _, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout.String() != output.EmptyList+"\n" {
		t.Errorf("expected empty list reply, got %q", stdout.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher, _, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher, _, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout.String() != "ktask 0.1.0\n" {
		t.Errorf("expected 'ktask 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_DashArgumentsReachCommand(t *testing.T) {
	dispatcher, _, sess := newDispatcher(t, nil)
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	if code := dispatcher.Run(ctx, []string{"todo", "-v", "flag"}, &stdout, &stderr); code != exitcode.Success {
		t.Fatalf("todo: expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if got := sess.List()[0].Description; got != "-v flag" {
		t.Errorf("expected description %q, got %q", "-v flag", got)
	}

	stderr.Reset()
	code := dispatcher.Run(ctx, []string{"mark", "-1"}, &stdout, &stderr)
	if code != exitcode.UserError {
		t.Errorf("mark -1: expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr.String() != "OOPS! There is no task with that number!\n" {
		t.Errorf("mark -1: unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_SyncNeedsLogin(t *testing.T) {
	dispatcher, _, _ := newDispatcher(t, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"sync"}, &stdout, &stderr)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout.String() != "" {
		t.Errorf("expected no stdout, got %q", stdout.String())
	}
}

func TestDispatcher_SyncUsesFactory(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher, cfg, _ := newDispatcher(t, testFactory(svc))
	writeCredentials(t, cfg.Dir)
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	dispatcher.Run(ctx, []string{"todo", "read", "book"}, &stdout, &stderr)

	stdout.Reset()
	code := dispatcher.Run(ctx, []string{"sync", "--list", "Reading"}, &stdout, &stderr)
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if got := svc.Tasks("reading"); len(got) != 1 || got[0].Title != "read book" {
		t.Errorf("unexpected remote tasks %+v", got)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"auth", fmt.Errorf("%w: invalid token.json", service.ErrAuth), exitcode.AuthError},
		{"backend mentioning token", errors.New("token bucket exhausted"), exitcode.BackendError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
				return nil, tt.err
			}
			dispatcher, cfg, _ := newDispatcher(t, factory)
			writeCredentials(t, cfg.Dir)

			var stdout, stderr bytes.Buffer
			code := dispatcher.Run(context.Background(), []string{"sync"}, &stdout, &stderr)

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d (stderr %q)", tt.code, code, stderr.String())
			}
		})
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher, cfg, _ := newDispatcher(t, testFactory(svc))
	writeCredentials(t, cfg.Dir)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"sync", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	dispatcher, _, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"sync", "--list"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -list\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}
