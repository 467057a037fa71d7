package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/koda-lang/koda/internal/version"
)

// VersionCommand prints the application's version details.
type VersionCommand struct {
	writer io.Writer
}

func (c *VersionCommand) Name() string {
	return "version"
}

func (c *VersionCommand) Summary() string {
	return "Show build version and commit"
}

func (c *VersionCommand) RegisterFlags(_ *flag.FlagSet) {}

func (c *VersionCommand) Run(_ context.Context, _ []string) error {
	commit := version.Commit
	if commit == "" {
		commit = "unknown"
	}
	_, err := fmt.Fprintf(c.writer, "%s\ncommit: %s\n", version.Label(), commit)
	return err
}
