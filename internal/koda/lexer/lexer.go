package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/koda-lang/koda/internal/koda/token"
)

// Lexer scans Koda source into tokens. It never fails: input it cannot
// recognise comes back as ILLEGAL tokens.
type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

// New creates a Lexer over the given source.
func New(input string) *Lexer {
	return &Lexer{input: []rune(input), line: 1, col: 1}
}

// Lex scans the whole source and returns its tokens without the trailing EOF.
// Keywords used as field or method names and the keyword "i" outside a
// generic for header are returned as identifiers.
func Lex(source string) []token.Token {
	l := New(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	retag(tokens)
	return tokens
}

// NextToken returns the next token, or EOF once the input is exhausted.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	line, col := l.line, l.col
	if l.pos >= len(l.input) {
		return token.Token{Type: token.EOF, Line: line, Column: col}
	}

	ch := l.input[l.pos]
	switch {
	case ch == '-' && l.peek(1) == '-':
		return l.readComment(line, col)
	case ch == '"' || ch == '\'':
		return l.readQuoted(ch, line, col)
	case ch == '[' && l.longBracketLevel(l.pos) >= 0:
		return l.readLongString(line, col)
	case isLetter(ch):
		literal := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(literal), Literal: literal, Line: line, Column: col}
	case isDigit(ch):
		return token.Token{Type: token.NUMBER, Literal: l.readNumber(), Line: line, Column: col}
	}

	for _, op := range token.Operators() {
		if l.hasPrefix(string(op)) {
			l.advanceN(len(op))
			return token.Token{Type: op, Literal: string(op), Line: line, Column: col}
		}
	}

	l.advance()
	return token.Token{Type: token.ILLEGAL, Literal: string(ch), Line: line, Column: col}
}

func (l *Lexer) readComment(line, col int) token.Token {
	start := l.pos
	l.advanceN(2)

	if level := l.longBracketLevel(l.pos); level >= 0 {
		l.advanceN(level + 2)
		if !l.skipLongBracketBody(level) {
			return token.Token{Type: token.ILLEGAL, Literal: string(l.input[start:l.pos]), Line: line, Column: col}
		}
		return token.Token{Type: token.COMMENT, Literal: string(l.input[start:l.pos]), Line: line, Column: col}
	}

	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
	return token.Token{Type: token.COMMENT, Literal: string(l.input[start:l.pos]), Line: line, Column: col}
}

func (l *Lexer) readQuoted(quote rune, line, col int) token.Token {
	start := l.pos
	l.advance()

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\n':
			return token.Token{Type: token.ILLEGAL, Literal: string(l.input[start:l.pos]), Line: line, Column: col}
		case ch == '\\':
			l.advance()
			if l.pos < len(l.input) {
				l.advance()
			}
		case ch == quote:
			l.advance()
			return token.Token{Type: token.STRING, Literal: string(l.input[start:l.pos]), Line: line, Column: col}
		default:
			l.advance()
		}
	}
	return token.Token{Type: token.ILLEGAL, Literal: string(l.input[start:l.pos]), Line: line, Column: col}
}

func (l *Lexer) readLongString(line, col int) token.Token {
	start := l.pos
	level := l.longBracketLevel(l.pos)
	l.advanceN(level + 2)
	if !l.skipLongBracketBody(level) {
		return token.Token{Type: token.ILLEGAL, Literal: string(l.input[start:l.pos]), Line: line, Column: col}
	}
	return token.Token{Type: token.STRING, Literal: string(l.input[start:l.pos]), Line: line, Column: col}
}

// longBracketLevel returns n when a long bracket "[" "="*n "[" opens at offset,
// otherwise -1.
func (l *Lexer) longBracketLevel(offset int) int {
	if offset >= len(l.input) || l.input[offset] != '[' {
		return -1
	}
	level := 0
	for i := offset + 1; i < len(l.input); i++ {
		switch l.input[i] {
		case '=':
			level++
		case '[':
			return level
		default:
			return -1
		}
	}
	return -1
}

// skipLongBracketBody consumes input up to and including the closing bracket
// of the given level. It reports false when the input ends first.
func (l *Lexer) skipLongBracketBody(level int) bool {
	closing := "]" + strings.Repeat("=", level) + "]"
	for l.pos < len(l.input) {
		if l.hasPrefix(closing) {
			l.advanceN(len(closing))
			return true
		}
		l.advance()
	}
	return false
}

// readIdentifier returns the identifier in NFC form, so a decomposed å, ä or ö
// names the same variable as the composed letter.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if !isLetter(ch) && !isDigit(ch) && !isSwedishMark(ch) {
			break
		}
		l.advance()
	}
	return norm.NFC.String(string(l.input[start:l.pos]))
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance()
	}
	// "1." is a number, "1..x" is a concatenation.
	if l.pos < len(l.input) && l.input[l.pos] == '.' && l.peek(1) != '.' {
		l.advance()
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.advance()
		}
	}
	return string(l.input[start:l.pos])
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n', '\f':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	i := l.pos
	for _, r := range s {
		if i >= len(l.input) || l.input[i] != r {
			return false
		}
		i++
	}
	return true
}

func (l *Lexer) peek(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && l.pos < len(l.input); i++ {
		l.advance()
	}
}

func isLetter(ch rune) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', ch == '_':
		return true
	}
	return strings.ContainsRune("åäöÅÄÖ", ch)
}

// isSwedishMark reports whether ch is the combining ring or diaeresis that
// follows a or o in decomposed å, ä and ö.
func isSwedishMark(ch rune) bool {
	return ch == '\u030a' || ch == '\u0308'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// retag turns keywords that cannot be keywords in their position into
// identifiers: anything after "." or ":", and "i" unless it follows the name
// list of a generic for.
func retag(tokens []token.Token) {
	for i := range tokens {
		tok := &tokens[i]
		if !token.IsKeyword(tok.Type) {
			continue
		}
		if prev := previous(tokens, i); prev >= 0 {
			if t := tokens[prev].Type; t == token.DOT || t == token.COLON {
				tok.Type = token.IDENT
				continue
			}
		}
		if tok.Type == token.IN && !afterForNames(tokens, i) {
			tok.Type = token.IDENT
		}
	}
}

// previous returns the index of the closest non-comment token before i, or -1.
func previous(tokens []token.Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Type != token.COMMENT {
			return j
		}
	}
	return -1
}

// afterForNames reports whether the tokens before i read "för name {, name}".
func afterForNames(tokens []token.Token, i int) bool {
	wantName := true
	for j := previous(tokens, i); j >= 0; j = previous(tokens, j) {
		t := tokens[j].Type
		if wantName {
			if t != token.IDENT {
				return false
			}
			wantName = false
			continue
		}
		switch t {
		case token.COMMA:
			wantName = true
		case token.FOR:
			return true
		default:
			return false
		}
	}
	return false
}
