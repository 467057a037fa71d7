package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/koda-lang/koda/internal/config"
	"github.com/koda-lang/koda/internal/linter"
	"github.com/koda-lang/koda/internal/ui/console"
)

// CheckCommand lints .kod files without running them.
type CheckCommand struct {
	stdout io.Writer
	stderr io.Writer
	strict *bool
}

// NewCheckCommand constructs a check command.
func NewCheckCommand(stdout, stderr io.Writer) *CheckCommand {
	return &CheckCommand{stdout: stdout, stderr: stderr}
}

func (c *CheckCommand) Name() string {
	return "check"
}

func (c *CheckCommand) Summary() string {
	return "Check .kod files for mistakes without running them"
}

func (c *CheckCommand) ArgsHint() string {
	return "[katalog|fil.kod...]"
}

func (c *CheckCommand) RegisterFlags(fs *flag.FlagSet) {
	c.strict = fs.Bool("strict", false, "fail on warnings as well as errors")
}

func (c *CheckCommand) Run(_ context.Context, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	out := newConsole(c.stdout, c.stderr, settings)
	out.Section("Check")

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	visitedRoots := make(map[string]struct{})
	grouped := make(map[string][]linter.LintError)
	totalErrors := 0
	totalWarnings := 0

	for _, dir := range roots {
		root := filepath.Clean(dir)
		if _, seen := visitedRoots[root]; seen {
			continue
		}
		visitedRoots[root] = struct{}{}

		if _, statErr := os.Stat(root); statErr != nil {
			if errors.Is(statErr, os.ErrNotExist) {
				out.Warn("%s does not exist", root)
				continue
			}
			return fmt.Errorf("stat %s: %w", root, statErr)
		}

		out.Info("Checking .kod files in %s...", root)

		lintErrors, lintErr := linter.LintKodaFiles(root)
		if lintErr != nil {
			return fmt.Errorf("error during check: %w", lintErr)
		}

		for _, issue := range lintErrors {
			displayPath := displayLintPath(issue.FilePath)
			issue.FilePath = displayPath
			grouped[displayPath] = append(grouped[displayPath], issue)
			if issue.Severity == linter.SeverityWarning {
				totalWarnings++
			} else {
				totalErrors++
			}
		}
	}

	if totalErrors == 0 && totalWarnings == 0 {
		out.Success("No problems found.")
		return nil
	}

	printLintReport(out, grouped)

	summary := fmt.Sprintf("Summary: %d file(s) with issues | %d error(s) | %d warning(s)", len(grouped), totalErrors, totalWarnings)
	if totalErrors > 0 {
		out.Warn("%s", summary)
	} else {
		out.Info("%s", summary)
	}

	if totalErrors > 0 || (c.strict != nil && *c.strict) {
		return newSilentExitError(1)
	}
	return nil
}

func displayLintPath(path string) string {
	cleaned := filepath.Clean(path)
	if rel, err := filepath.Rel(".", cleaned); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(cleaned)
}

func printLintReport(writer *console.Writer, grouped map[string][]linter.LintError) {
	files := make([]string, 0, len(grouped))
	for file := range grouped {
		files = append(files, file)
	}
	sort.Strings(files)

	severityRank := map[linter.Severity]int{
		linter.SeverityError:   0,
		linter.SeverityWarning: 1,
	}

	colorEnabled := writer.ColorsEnabled()

	const (
		ansiReset  = "\033[0m"
		ansiYellow = "\033[33m"
		ansiRed    = "\033[31m"
	)

	for _, file := range files {
		writer.Section(file)

		issues := grouped[file]
		sort.SliceStable(issues, func(i, j int) bool {
			if severityRank[issues[i].Severity] != severityRank[issues[j].Severity] {
				return severityRank[issues[i].Severity] < severityRank[issues[j].Severity]
			}
			return issues[i].Line < issues[j].Line
		})

		for _, issue := range issues {
			line := "-"
			if issue.Line > 0 {
				line = fmt.Sprintf("%d", issue.Line)
			}

			formatted := fmt.Sprintf("  line %-4s | %-7s | %s", line, issue.Severity, issue.Message)
			if colorEnabled {
				switch issue.Severity {
				case linter.SeverityWarning:
					formatted = ansiYellow + formatted + ansiReset
				case linter.SeverityError:
					formatted = ansiRed + formatted + ansiReset
				}
			}
			writer.RawLine("%s", formatted)

			if snippet := strings.TrimSpace(issue.Snippet); snippet != "" {
				writer.RawLine("    > %s", snippet)
			}
		}
	}
}
