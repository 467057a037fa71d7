package emitter

import (
	"bytes"
	"strings"

	"github.com/koda-lang/koda/internal/koda/mangle"
	"github.com/koda-lang/koda/internal/koda/token"
)

// Emitter converts a Koda token stream into Lua source.
type Emitter struct {
	buffer  *bytes.Buffer
	line    int
	started bool
}

// New creates a new Emitter.
func New() *Emitter {
	return &Emitter{buffer: new(bytes.Buffer), line: 1}
}

// Emit is a convenience wrapper around New().Emit.
func Emit(tokens []token.Token) string {
	return New().Emit(tokens)
}

// Emit returns the Lua source for tokens. Tokens on one line are joined by a
// single space; a token on a later line is preceded by enough newlines to keep
// it on the same line number in the output.
func (e *Emitter) Emit(tokens []token.Token) string {
	for _, tok := range tokens {
		text, ok := e.lexeme(tok)
		if !ok {
			continue
		}
		e.writeSeparator(tok.Line)
		e.buffer.WriteString(text)
		e.line += strings.Count(text, "\n")
		e.started = true
	}
	return e.buffer.String()
}

func (e *Emitter) lexeme(tok token.Token) (string, bool) {
	switch tok.Type {
	case token.COMMENT, token.ILLEGAL, token.EOF:
		return "", false
	case token.IDENT:
		return mangle.Mangle(tok.Literal), true
	case token.STRING, token.NUMBER:
		return tok.Literal, true
	}
	if kw, ok := token.HostKeyword(tok.Type); ok {
		return kw, true
	}
	return tok.Literal, true
}

func (e *Emitter) writeSeparator(line int) {
	if line > e.line {
		e.buffer.WriteString(strings.Repeat("\n", line-e.line))
		e.line = line
		return
	}
	if e.started {
		e.buffer.WriteByte(' ')
	}
}
