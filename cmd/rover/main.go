package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/terassyi/rover/internal/env"
	"github.com/terassyi/rover/internal/errors"
	"github.com/terassyi/rover/internal/printer"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, env.OS{})
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
// Any error is classified and printed to stderr in the selected output format.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, lookup env.Lookuper) int {
	opts := &globalOptions{env: lookup, stdin: stdin, stderr: stderr}

	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	formatter := printer.NewErrorFormatter(stderr, opts.noColorOutput())
	formatter.Classifier = errors.NewClassifier(lookup)
	if pErr := formatter.Print(err, opts.format); pErr != nil {
		// Fall back to the plain message.
		io.WriteString(stderr, err.Error()+"\n")
	}
	return 1
}
