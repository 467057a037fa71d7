package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/koda-lang/koda/internal/config"
	"github.com/koda-lang/koda/internal/diff"
	"github.com/koda-lang/koda/internal/formatter"
	"github.com/koda-lang/koda/internal/fsutil"
)

// FmtCommand formats .kod files.
type FmtCommand struct {
	stdout   io.Writer
	stderr   io.Writer
	check    *bool
	showDiff *bool
}

// NewFmtCommand constructs a fmt command.
func NewFmtCommand(stdout, stderr io.Writer) *FmtCommand {
	return &FmtCommand{stdout: stdout, stderr: stderr}
}

func (c *FmtCommand) Name() string {
	return "fmt"
}

func (c *FmtCommand) Summary() string {
	return "Format .kod files"
}

func (c *FmtCommand) ArgsHint() string {
	return "[katalog|fil.kod...]"
}

func (c *FmtCommand) RegisterFlags(fs *flag.FlagSet) {
	c.check = fs.Bool("check", false, "list unformatted files without rewriting them")
	c.showDiff = fs.Bool("diff", false, "show the changes formatting makes")
}

func (c *FmtCommand) Run(_ context.Context, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	out := newConsole(c.stdout, c.stderr, settings)
	checkOnly := c.check != nil && *c.check
	showDiff := c.showDiff != nil && *c.showDiff

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	var changed []string
	failed := false
	for _, root := range roots {
		if _, statErr := os.Stat(root); os.IsNotExist(statErr) {
			out.Warn("%s does not exist", root)
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !fsutil.IsKodaPath(path) {
				return nil
			}
			res, err := formatter.FormatKodaFile(path, !checkOnly)
			if err != nil {
				// Report and keep formatting the other files.
				out.Error("Error formatting %s: %v", displayLintPath(path), err)
				failed = true
				return nil
			}
			if !res.Changed() {
				return nil
			}
			display := displayLintPath(path)
			changed = append(changed, display)
			if showDiff {
				out.Write(diff.Format(display, diff.Generate(res.Original, res.Formatted, 2), out.ColorsEnabled()))
			}
			return nil
		})
		if walkErr != nil {
			return fmt.Errorf("error during formatting: %w", walkErr)
		}
	}

	if len(changed) == 0 && !failed {
		out.Info("No files to format.")
		return nil
	}
	for _, path := range changed {
		out.RawLine("%s", path)
	}
	if failed || (checkOnly && len(changed) > 0) {
		return newSilentExitError(1)
	}
	return nil
}
