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
)

// App coordinates CLI command registration and execution.
type App struct {
	commands map[string]Command
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

// New creates the CLI application reading from os.Stdin.
func New(stdout, stderr io.Writer) *App {
	return NewWithInput(os.Stdin, stdout, stderr)
}

// NewWithInput creates the CLI application, pre-registering the built-in
// commands.
func NewWithInput(stdin io.Reader, stdout, stderr io.Writer) *App {
	app := &App{
		commands: make(map[string]Command),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}

	app.Register(&HelpCommand{app: app})
	app.Register(&VersionCommand{writer: stdout})
	app.Register(NewRunCommand(stdin, stdout, stderr))
	app.Register(NewReplCommand(stdin, stdout, stderr))
	app.Register(NewTranslateCommand(stdout, stderr))
	app.Register(NewTokensCommand(stdout, stderr))
	app.Register(NewCheckCommand(stdout, stderr))
	app.Register(NewFmtCommand(stdout, stderr))
	app.Register(NewPreludeCommand(stdout, stderr))
	app.Register(NewConfigCommand(stdout, stderr))

	return app
}

// Register adds a command to the application. Duplicate names result in panic.
func (a *App) Register(cmd Command) {
	if _, exists := a.commands[cmd.Name()]; exists {
		panic(fmt.Sprintf("cli: command %q already registered", cmd.Name()))
	}
	a.commands[cmd.Name()] = cmd
}

// Execute runs the command named by args[0]. Without arguments the REPL
// starts; an argument that names no command is treated as a program to run.
func (a *App) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.dispatch(ctx, a.commands["repl"], nil)
	}

	switch args[0] {
	case "-h", "-help", "--help":
		a.printUsage()
		return nil
	}

	if target, ok := a.commands[args[0]]; ok {
		return a.dispatch(ctx, target, args[1:])
	}
	return a.dispatch(ctx, a.commands["run"], args)
}

func (a *App) dispatch(ctx context.Context, target Command, args []string) error {
	fs := flag.NewFlagSet(target.Name(), flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	target.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			a.printCommandUsage(target, fs)
			return nil
		}
		return err
	}

	return target.Run(ctx, fs.Args())
}

func (a *App) printUsage() {
	name := executableName()
	_, _ = fmt.Fprintf(a.stderr, "Usage:\n")
	_, _ = fmt.Fprintf(a.stderr, "  %s                      start the interactive prompt\n", name)
	_, _ = fmt.Fprintf(a.stderr, "  %s <fil.kod> [args...]  run a program\n", name)
	_, _ = fmt.Fprintf(a.stderr, "  %s <command> [flags]\n\n", name)
	_, _ = fmt.Fprintf(a.stderr, "Available commands:\n")

	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		if name == "help" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := a.commands[name]
		_, _ = fmt.Fprintf(a.stderr, "  %-10s %s\n", cmd.Name(), cmd.Summary())
	}

	if helpCmd, exists := a.commands["help"]; exists {
		_, _ = fmt.Fprintf(a.stderr, "  %-10s %s\n", helpCmd.Name(), helpCmd.Summary())
	}
}

func (a *App) printUnknownCommand(name string) {
	_, _ = fmt.Fprintf(a.stderr, "Unknown command %q\n\n", name)
	a.printUsage()
}

func (a *App) printCommandUsage(cmd Command, fs *flag.FlagSet) {
	usage := strings.TrimSpace(fmt.Sprintf("%s %s [flags] %s", executableName(), cmd.Name(), argsHint(cmd)))
	_, _ = fmt.Fprintf(a.stderr, "Usage: %s\n\n", usage)
	if summary := cmd.Summary(); summary != "" {
		_, _ = fmt.Fprintf(a.stderr, "%s\n\n", summary)
	}
	fs.PrintDefaults()
}

// argsHinter is implemented by commands that take positional arguments.
type argsHinter interface {
	ArgsHint() string
}

func argsHint(cmd Command) string {
	if h, ok := cmd.(argsHinter); ok {
		return h.ArgsHint()
	}
	return ""
}

func executableName() string {
	name := os.Args[0]
	if name == "" {
		return "koda"
	}
	return filepath.Base(name)
}
