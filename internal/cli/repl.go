package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"ktask/internal/output"
)

// Loop reads command lines from in until EOF, "bye", or ctx is cancelled.
// Every reply, errors included, goes to out and is followed by the
// separator line. Cancellation interrupts a blocked read; the reading
// goroutine then exits with the next line or when in is closed.
func (d *Dispatcher) Loop(ctx context.Context, in io.Reader, out io.Writer) error {
	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	lines, readErr := readLines(readCtx, in)

	for !d.sess.Closed() {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			d.Run(ctx, strings.Fields(line), out, out)
			fmt.Fprintln(out, output.Separator)
		}
	}
	return nil
}

// readLines feeds the lines of in to the returned channel and closes it at
// EOF or when ctx is done. The reason, nil at a clean EOF, is then sent on
// the error channel.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
