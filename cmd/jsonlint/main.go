package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// exitError ends the command with a status code after its output has
// already been written.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// usageError reports a command line mistake.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	flags := &rootFlags{}
	root := newRootCmd(flags, stdout, stderr)
	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if finishErr := flags.finish(); finishErr != nil {
		_ = writef(stderr, "error: %v\n", finishErr)
	}
	if err == nil {
		return 0
	}

	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	var usage usageError
	if errors.As(err, &usage) {
		if writeErr := writef(stderr, "error: %v\nRun '%s --help' for usage.\n", usage.err, root.Name()); writeErr != nil {
			return 1
		}
		return 2
	}
	_ = writef(stderr, "error: %v\n", err)
	return 1
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
