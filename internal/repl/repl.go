// Package repl implements the interactive Koda prompt.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	lua "github.com/yuin/gopher-lua"

	"github.com/koda-lang/koda/internal/diagnostic"
	"github.com/koda-lang/koda/internal/harness"
	"github.com/koda-lang/koda/internal/koda/translate"
	"github.com/koda-lang/koda/internal/ui/console"
	"github.com/koda-lang/koda/internal/version"
)

const (
	// Prompt starts a new input.
	Prompt = "> "
	// ContinuationPrompt asks for more of an unfinished input.
	ContinuationPrompt = ">> "

	chunkName = "repl"
)

// Options configures a Session.
type Options struct {
	Reader  LineReader
	Console *console.Writer
	HelpURL string

	// Harness configures the interpreter. Args is ignored: the REPL has no
	// program file.
	Harness harness.Options
}

// Session is one REPL run. Globals persist between inputs.
type Session struct {
	reader  LineReader
	console *console.Writer
	harness *harness.Harness
	helpURL string
}

// New prepares the interpreter for a session.
func New(opts Options) (*Session, error) {
	if opts.Reader == nil {
		return nil, errors.New("repl: no line reader")
	}
	if opts.Console == nil {
		opts.Console = console.New(nil, nil)
	}
	hopts := opts.Harness
	hopts.Args = nil
	h, err := harness.New(hopts)
	if err != nil {
		return nil, err
	}
	return &Session{
		reader:  opts.Reader,
		console: opts.Console,
		harness: h,
		helpURL: opts.HelpURL,
	}, nil
}

// Banner is printed when a session starts.
func Banner() string {
	return fmt.Sprintf("%s. Skriv :hjälp för hjälp och :avsluta för att avsluta.", version.Label())
}

// Run reads and evaluates inputs until the reader ends, a quit command is
// given or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.console.RawLine("%s", Banner())

	prompt := Prompt
	var pending []string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.reader.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				s.console.Write("\n")
				return nil
			case errors.Is(err, liner.ErrPromptAborted):
				pending, prompt = nil, Prompt
				continue
			}
			return fmt.Errorf("read input: %w", err)
		}

		if len(pending) == 0 {
			if cmd := strings.TrimSpace(line); strings.HasPrefix(cmd, ":") {
				if s.command(cmd) {
					return nil
				}
				continue
			}
		}

		pending = append(pending, line)
		input := strings.Join(pending, "\n")
		values, err := s.eval(input)
		if harness.KindOf(err) == harness.KindIncomplete {
			prompt = ContinuationPrompt
			continue
		}
		pending, prompt = nil, Prompt

		if err != nil {
			s.console.WriteErr(diagnostic.Format(err) + "\n")
			continue
		}
		if strings.TrimSpace(input) != "" {
			s.reader.AppendHistory(input)
		}
		if len(values) > 0 {
			s.console.RawLine("%s", diagnostic.Values(values))
		}
	}
}

// eval tries the input as an expression first so "1+1" shows its value, then
// as a statement chunk.
func (s *Session) eval(input string) ([]lua.LValue, error) {
	code, err := translate.TranslateInteractive(input)
	if err != nil {
		return nil, err
	}
	values, err := s.harness.Eval(chunkName, "return "+code)
	if harness.KindOf(err) != harness.KindSyntax {
		return values, err
	}
	values, err = s.harness.Eval(chunkName, code)
	return values, harness.MarkIncomplete(err, input)
}

// command handles a colon-prefixed input and reports whether to quit.
func (s *Session) command(cmd string) bool {
	switch cmd {
	case ":q", ":quit", ":a", ":avsluta":
		return true
	case ":h", ":hjälp":
		s.console.RawLine("Hjälp och exempel finns på %s", s.helpURL)
	default:
		s.console.RawLine("Okänt kommando %q. Skriv :hjälp för hjälp.", cmd)
	}
	return false
}

// Close releases the interpreter and the line reader.
func (s *Session) Close() error {
	s.harness.Close()
	return s.reader.Close()
}
