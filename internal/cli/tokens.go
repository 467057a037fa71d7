package cli

import (
	"context"
	"flag"
	"io"
	"strings"

	"github.com/koda-lang/koda/internal/config"
	"github.com/koda-lang/koda/internal/koda/token"
	"github.com/koda-lang/koda/internal/koda/translate"
)

// TokensCommand dumps the token stream of a Koda file, one token per line.
type TokensCommand struct {
	stdout   io.Writer
	stderr   io.Writer
	comments *bool
}

// NewTokensCommand constructs a tokens command.
func NewTokensCommand(stdout, stderr io.Writer) *TokensCommand {
	return &TokensCommand{stdout: stdout, stderr: stderr}
}

func (c *TokensCommand) Name() string {
	return "tokens"
}

func (c *TokensCommand) Summary() string {
	return "Print the tokens of a .kod file"
}

func (c *TokensCommand) ArgsHint() string {
	return "<fil.kod>"
}

func (c *TokensCommand) RegisterFlags(fs *flag.FlagSet) {
	c.comments = fs.Bool("comments", false, "include comment tokens")
}

func (c *TokensCommand) Run(_ context.Context, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	out := newConsole(c.stdout, c.stderr, settings)

	source, err := readKodaFile(out, args)
	if err != nil {
		return err
	}

	withComments := c.comments != nil && *c.comments
	var b strings.Builder
	for _, tok := range translate.Tokens(source) {
		if tok.Type == token.COMMENT && !withComments {
			continue
		}
		b.WriteString(tok.String())
		b.WriteByte('\n')
	}
	out.Write(b.String())
	return nil
}
