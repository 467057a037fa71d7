package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/koda-lang/koda/internal/config"
	"github.com/koda-lang/koda/internal/diagnostic"
	"github.com/koda-lang/koda/internal/fsutil"
	"github.com/koda-lang/koda/internal/koda/translate"
	"github.com/koda-lang/koda/internal/ui/console"
)

// TranslateCommand prints the Lua a Koda program translates to.
type TranslateCommand struct {
	stdout io.Writer
	stderr io.Writer
	output *string
}

// NewTranslateCommand constructs a translate command.
func NewTranslateCommand(stdout, stderr io.Writer) *TranslateCommand {
	return &TranslateCommand{stdout: stdout, stderr: stderr}
}

func (c *TranslateCommand) Name() string {
	return "translate"
}

func (c *TranslateCommand) Summary() string {
	return "Print the Lua translation of a .kod file"
}

func (c *TranslateCommand) ArgsHint() string {
	return "<fil.kod>"
}

func (c *TranslateCommand) RegisterFlags(fs *flag.FlagSet) {
	c.output = fs.String("o", "", "write the translation to this file instead of stdout")
}

func (c *TranslateCommand) Run(_ context.Context, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	out := newConsole(c.stdout, c.stderr, settings)

	source, err := readKodaFile(out, args)
	if err != nil {
		return err
	}
	code, err := translate.Translate(source)
	if err != nil {
		out.Problem(diagnostic.Header, diagnostic.Format(err))
		return newSilentExitError(1)
	}
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}

	target := ""
	if c.output != nil {
		target = strings.TrimSpace(*c.output)
	}
	if target == "" {
		out.Write(code)
		return nil
	}
	if err := fsutil.EnsureParentDir(target); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}
	if err := os.WriteFile(target, []byte(code), fsutil.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	out.Success("Wrote %s", target)
	return nil
}

// readKodaFile reads the single .kod file named by args.
func readKodaFile(out *console.Writer, args []string) (string, error) {
	if len(args) != 1 {
		out.Error("%s", msgMissingFile)
		return "", newSilentExitError(1)
	}
	path := args[0]
	if !fsutil.IsKodaPath(path) {
		out.Error("%s", "Du måste ange en fil som slutar med .kod")
		return "", newSilentExitError(1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		out.Error("Kunde inte läsa filen %s: %v", path, err)
		return "", newSilentExitError(1)
	}
	return string(data), nil
}
