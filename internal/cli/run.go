package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"

	"github.com/koda-lang/koda/internal/config"
	"github.com/koda-lang/koda/internal/diagnostic"
	"github.com/koda-lang/koda/internal/harness"
	"github.com/koda-lang/koda/internal/ui/console"
)

// RunCommand translates and runs a program file.
type RunCommand struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	console *console.Writer
	verbose *bool
}

// NewRunCommand constructs a run command.
func NewRunCommand(stdin io.Reader, stdout, stderr io.Writer) *RunCommand {
	return &RunCommand{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

func (c *RunCommand) Name() string {
	return "run"
}

func (c *RunCommand) Summary() string {
	return "Run a .kod or .lua program"
}

func (c *RunCommand) ArgsHint() string {
	return "<fil.kod> [argument...]"
}

func (c *RunCommand) RegisterFlags(fs *flag.FlagSet) {
	c.verbose = fs.Bool("verbose", false, "print the translated Lua before running and the stack on runtime errors, both to stderr")
}

func (c *RunCommand) Run(_ context.Context, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	c.console = newConsole(c.stdout, c.stderr, settings)
	defer c.pause(settings)

	if len(args) == 0 {
		c.console.Error("%s", msgMissingFile)
		return newSilentExitError(1)
	}
	path := args[0]

	code, err := loadSource(c.console, path)
	if err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			return err
		}
		c.console.Problem(diagnostic.Header, diagnostic.Format(err))
		return newSilentExitError(1)
	}
	verbose := c.verbose != nil && *c.verbose
	if verbose {
		c.console.Code(code)
	}

	h, err := harness.New(harness.Options{
		Args:   args,
		Stdin:  c.stdin,
		Stdout: c.stdout,
	})
	if err != nil {
		c.console.Problem(diagnostic.Header, diagnostic.Format(err))
		return newSilentExitError(1)
	}
	defer h.Close()

	if err := h.Run(path, code); err != nil {
		c.console.Problem(diagnostic.Header, diagnostic.Format(err))
		if verbose {
			if tb := diagnostic.Traceback(err); tb != "" {
				c.console.Code(tb)
			}
		}
		return newSilentExitError(1)
	}
	return nil
}

// pause keeps a console window open after the program ends when both ends
// are a terminal, unless configuration says otherwise.
func (c *RunCommand) pause(settings config.Settings) {
	interactive := console.IsTerminal(c.stdin) && console.IsTerminal(c.stdout)
	if !settings.PauseOnExit.Enabled(interactive) {
		return
	}
	c.console.RawLine("%s", msgPause)
	_, _ = bufio.NewReader(c.stdin).ReadString('\n')
}
