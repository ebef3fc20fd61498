// Package main is the entry point for the ktask CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ktask/internal/exitcode"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	code := exitcode.Success
	root := newRootCommand(os.Stdin, os.Stdout, os.Stderr, &code)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		code = exitcode.UserError
	}

	cancel()
	os.Exit(code)
}
