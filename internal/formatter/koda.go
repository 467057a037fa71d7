// Package formatter rewrites Koda source into its canonical layout.
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/koda-lang/koda/internal/fsutil"
	"github.com/koda-lang/koda/internal/koda/lexer"
	"github.com/koda-lang/koda/internal/koda/token"
)

// Indent is the text inserted per block level.
const Indent = "    "

var trailingWhitespaceRegex = regexp.MustCompile(`[\t ]+$`)

// Result describes one formatted file.
type Result struct {
	Path      string
	Original  []byte
	Formatted []byte
}

// Changed reports whether formatting altered the file.
func (r Result) Changed() bool {
	return !bytes.Equal(r.Original, r.Formatted)
}

// FormatKodaFile formats the .kod file at path. The file is rewritten only
// when write is set and the content changed.
func FormatKodaFile(path string, write bool) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	formatted, err := Format(string(content))
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	res := Result{Path: path, Original: content, Formatted: []byte(formatted)}
	if write && res.Changed() {
		if err := os.WriteFile(path, res.Formatted, fsutil.FilePerm); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// Format re-indents source by block depth, trims trailing whitespace,
// collapses runs of blank lines into one and ends the text with a single
// newline. Lines inside multi-line strings and comments are kept as they are.
// Source the lexer cannot read is refused.
func Format(source string) (string, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	tokens := lexer.Lex(source)

	// verbatim marks lines that continue a multi-line token; keepTail marks
	// lines whose end belongs to one.
	verbatim := make(map[int]bool)
	keepTail := make(map[int]bool)
	byLine := make(map[int][]token.Token)
	for _, tok := range tokens {
		if tok.Type == token.ILLEGAL {
			return "", fmt.Errorf("line %d: cannot format %q", tok.Line, firstLine(tok.Literal))
		}
		byLine[tok.Line] = append(byLine[tok.Line], tok)
		if n := strings.Count(tok.Literal, "\n"); n > 0 {
			keepTail[tok.Line] = true
			for l := tok.Line + 1; l <= tok.Line+n; l++ {
				verbatim[l] = true
				keepTail[l] = true
			}
		}
	}

	var (
		out   []string
		stack []int
		blank bool
		level int
	)
	for i, line := range strings.Split(source, "\n") {
		n := i + 1
		if verbatim[n] {
			out = append(out, line)
			blank = false
			for _, tok := range byLine[n] {
				stack = track(stack, tok.Type, level)
			}
			continue
		}

		lineToks := byLine[n]
		if len(lineToks) == 0 {
			if len(out) > 0 && !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false

		level = 0
		if len(stack) > 0 {
			level = stack[len(stack)-1] + 1
			if dedents(lineToks[0].Type) {
				level--
			}
		}
		for _, tok := range lineToks {
			stack = track(stack, tok.Type, level)
		}

		text := strings.TrimLeft(line, " \t")
		if !keepTail[n] {
			text = trailingWhitespaceRegex.ReplaceAllString(text, "")
		}
		out = append(out, strings.Repeat(Indent, level)+text)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "", nil
	}
	return strings.Join(out, "\n") + "\n", nil
}

// track updates the stack of open blocks. Each entry is the level of the line
// that opened the block.
func track(stack []int, t token.TokenType, level int) []int {
	switch t {
	case token.FUNCTION, token.DO, token.IF, token.REPEAT,
		token.LPAREN, token.LBRACE, token.LBRACKET:
		return append(stack, level)
	case token.END, token.UNTIL,
		token.RPAREN, token.RBRACE, token.RBRACKET:
		if len(stack) > 0 {
			return stack[:len(stack)-1]
		}
	}
	return stack
}

// dedents reports whether a line starting with t sits at the level of the
// block it belongs to rather than inside it.
func dedents(t token.TokenType) bool {
	switch t {
	case token.END, token.UNTIL, token.ELSE, token.ELSEIF,
		token.RPAREN, token.RBRACE, token.RBRACKET:
		return true
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
