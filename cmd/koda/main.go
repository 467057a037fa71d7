package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/koda-lang/koda/internal/cli"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

func run(args []string) error {
	app := cli.New(os.Stdout, os.Stderr)

	return app.Execute(context.Background(), args)
}

type exitCoder interface {
	ExitCode() int
	Silent() bool
}

// report prints err unless it was already shown and returns the exit code.
func report(w io.Writer, err error) int {
	var coded exitCoder
	if errors.As(err, &coded) {
		if !coded.Silent() {
			fmt.Fprintf(w, "error: %v\n", err)
		}
		return coded.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
