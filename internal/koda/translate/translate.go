// Package translate turns Koda source into Lua source.
package translate

import (
	"fmt"
	"strings"

	"github.com/koda-lang/koda/internal/koda/emitter"
	"github.com/koda-lang/koda/internal/koda/lexer"
	"github.com/koda-lang/koda/internal/koda/mangle"
	"github.com/koda-lang/koda/internal/koda/token"
)

// ReservedError reports an identifier that collides with the keyword escape
// sentinel and therefore cannot be translated.
type ReservedError struct {
	Name   string
	Line   int
	Column int
}

func (e *ReservedError) Error() string {
	return fmt.Sprintf("line %d:%d: identifier %q is reserved", e.Line, e.Column, e.Name)
}

// Tokens lexes source. Identifiers come back in NFC form; strings and
// comments keep their original bytes.
func Tokens(source string) []token.Token {
	return lexer.Lex(source)
}

// Translate returns the Lua source for a Koda program.
func Translate(source string) (string, error) {
	tokens := Tokens(source)
	if err := checkReserved(tokens); err != nil {
		return "", err
	}
	return emitter.Emit(tokens), nil
}

// TranslateInteractive translates one REPL input. Top-level "lokal"
// declarations become global assignments so they outlive the chunk.
func TranslateInteractive(source string) (string, error) {
	tokens := Tokens(source)
	if err := checkReserved(tokens); err != nil {
		return "", err
	}
	return emitter.Emit(promoteLocals(tokens)), nil
}

func checkReserved(tokens []token.Token) error {
	for _, tok := range tokens {
		if tok.Type == token.IDENT && mangle.IsReserved(tok.Literal) {
			return &ReservedError{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
		}
	}
	return nil
}

// promoteLocals drops "lokal" at block depth zero. A bare declaration such as
// "lokal a, b" gains "= ingenting" so it stays a valid statement.
func promoteLocals(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	depth := 0
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Type == token.LOCAL && depth == 0 {
			next := nextSignificant(tokens, i)
			if next >= 0 && tokens[next].Type == token.FUNCTION {
				continue
			}
			end := nameListEnd(tokens, i)
			if end == i+1 {
				out = append(out, tok)
				continue
			}
			out = append(out, significantRange(tokens, i+1, end)...)
			if end >= len(tokens) || tokens[end].Type != token.ASSIGN {
				last := tokens[end-1]
				out = append(out,
					token.Token{Type: token.ASSIGN, Literal: "=", Line: last.Line, Column: last.Column},
					token.Token{Type: token.NIL, Literal: "ingenting", Line: last.Line, Column: last.Column},
				)
			}
			i = end - 1
			continue
		}
		depth += depthChange(tok.Type)
		if depth < 0 {
			depth = 0
		}
		out = append(out, tok)
	}
	return out
}

// nameListEnd returns the index just past "name {, name}" following tokens[i].
func nameListEnd(tokens []token.Token, i int) int {
	wantName := true
	j := i + 1
	for ; j < len(tokens); j++ {
		t := tokens[j].Type
		if t == token.COMMENT {
			continue
		}
		if wantName {
			if t != token.IDENT {
				break
			}
			wantName = false
			continue
		}
		if t != token.COMMA {
			break
		}
		wantName = true
	}
	return j
}

func significantRange(tokens []token.Token, from, to int) []token.Token {
	var out []token.Token
	for _, tok := range tokens[from:to] {
		if tok.Type != token.COMMENT {
			out = append(out, tok)
		}
	}
	return out
}

func nextSignificant(tokens []token.Token, i int) int {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Type != token.COMMENT {
			return j
		}
	}
	return -1
}

// depthChange is the effect of a token on block nesting.
func depthChange(t token.TokenType) int {
	switch t {
	case token.FUNCTION, token.DO, token.IF, token.REPEAT,
		token.LPAREN, token.LBRACE, token.LBRACKET:
		return 1
	case token.END, token.UNTIL,
		token.RPAREN, token.RBRACE, token.RBRACKET:
		return -1
	}
	return 0
}

// Incomplete reports whether source stops in the middle of a construct: an
// open block or bracket, an unterminated long comment or long string, or a
// trailing operator that needs a right-hand side.
func Incomplete(source string) bool {
	tokens := Tokens(source)

	depth := 0
	var last token.Token
	for _, tok := range tokens {
		if tok.Type == token.COMMENT {
			continue
		}
		if tok.Type == token.ILLEGAL && (strings.HasPrefix(tok.Literal, "--[") || strings.HasPrefix(tok.Literal, "[")) {
			return true
		}
		depth += depthChange(tok.Type)
		last = tok
	}
	if depth > 0 {
		return true
	}
	return needsOperand(last.Type)
}

func needsOperand(t token.TokenType) bool {
	switch t {
	case token.ASSIGN, token.COMMA, token.DOT, token.COLON, token.CONCAT,
		token.EQ, token.NOT_EQ, token.GT, token.LT, token.GTE, token.LTE,
		token.ASTERISK, token.SLASH, token.PERCENT, token.PLUS, token.MINUS, token.CARET,
		token.LENGTH, token.AND, token.OR, token.NOT,
		token.LOCAL, token.WHILE, token.FOR, token.UNTIL, token.IN:
		return true
	}
	return false
}
