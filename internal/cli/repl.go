package cli

import (
	"bufio"
	"context"
	"flag"
	"io"

	"github.com/koda-lang/koda/internal/config"
	"github.com/koda-lang/koda/internal/fsutil"
	"github.com/koda-lang/koda/internal/harness"
	"github.com/koda-lang/koda/internal/repl"
	"github.com/koda-lang/koda/internal/ui/console"
)

// ReplCommand starts the interactive prompt.
type ReplCommand struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	noHistory *bool
}

// NewReplCommand constructs a repl command.
func NewReplCommand(stdin io.Reader, stdout, stderr io.Writer) *ReplCommand {
	return &ReplCommand{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (c *ReplCommand) Name() string {
	return "repl"
}

func (c *ReplCommand) Summary() string {
	return "Start the interactive prompt (default without arguments)"
}

func (c *ReplCommand) RegisterFlags(fs *flag.FlagSet) {
	c.noHistory = fs.Bool("no-history", false, "do not read or write the history file")
}

func (c *ReplCommand) Run(ctx context.Context, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	out := newConsole(c.stdout, c.stderr, settings)

	stdin := bufio.NewReader(c.stdin)
	reader, err := c.lineReader(stdin, settings)
	if err != nil {
		return err
	}

	session, err := repl.New(repl.Options{
		Reader:  reader,
		Console: out,
		HelpURL: settings.HelpURL,
		Harness: harness.Options{Stdin: stdin, Stdout: c.stdout},
	})
	if err != nil {
		_ = reader.Close()
		return err
	}

	runErr := session.Run(ctx)
	if err := session.Close(); err != nil {
		out.Warn("%v", err)
	}
	return runErr
}

// lineReader uses the line editor on a terminal and plain line reading from
// stdin otherwise, so piped input works.
func (c *ReplCommand) lineReader(stdin *bufio.Reader, settings config.Settings) (repl.LineReader, error) {
	if !console.IsTerminal(c.stdin) || !console.IsTerminal(c.stdout) {
		return repl.NewScanner(stdin, c.stdout), nil
	}
	historyPath := ""
	if c.noHistory == nil || !*c.noHistory {
		path, err := fsutil.HistoryPath(settings.HistoryFile)
		if err != nil {
			return nil, err
		}
		historyPath = path
	}
	return repl.NewEditor(historyPath), nil
}
