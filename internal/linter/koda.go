package linter

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/koda-lang/koda/internal/fsutil"
	"github.com/koda-lang/koda/internal/harness"
	"github.com/koda-lang/koda/internal/koda/mangle"
	"github.com/koda-lang/koda/internal/koda/token"
	"github.com/koda-lang/koda/internal/koda/translate"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// LintError describes a linting issue.
type LintError struct {
	FilePath string
	Line     int
	Severity Severity
	Message  string
	Snippet  string
}

func (e LintError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
}

// LintKodaFiles walks root and lints every .kod file below it. root may also
// name a single file.
func LintKodaFiles(root string) ([]LintError, error) {
	checker, err := newChecker()
	if err != nil {
		return nil, err
	}
	defer checker.close()

	var errors []LintError
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fsutil.IsKodaPath(d.Name()) {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			errors = append(errors, LintError{
				FilePath: filepath.ToSlash(path),
				Severity: SeverityError,
				Message:  readErr.Error(),
			})
			return nil
		}
		for _, fe := range checker.lint(path, string(data)) {
			fe.FilePath = filepath.ToSlash(fe.FilePath)
			errors = append(errors, fe)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return errors, nil
}

// LintSource lints a single Koda program held in memory.
func LintSource(path, source string) ([]LintError, error) {
	checker, err := newChecker()
	if err != nil {
		return nil, err
	}
	defer checker.close()
	return checker.lint(path, source), nil
}

type checker struct {
	harness *harness.Harness
}

func newChecker() (*checker, error) {
	h, err := harness.New(harness.Options{
		Stdin:  strings.NewReader(""),
		Stdout: io.Discard,
		Open:   func(string) error { return nil },
	})
	if err != nil {
		return nil, fmt.Errorf("prepare interpreter: %w", err)
	}
	return &checker{harness: h}, nil
}

func (c *checker) close() {
	c.harness.Close()
}

func (c *checker) lint(path, source string) []LintError {
	lines := strings.Split(source, "\n")
	snippet := func(line int) string {
		if line < 1 || line > len(lines) {
			return ""
		}
		return strings.TrimSpace(lines[line-1])
	}
	report := func(line int, severity Severity, format string, args ...any) LintError {
		return LintError{
			FilePath: path,
			Line:     line,
			Severity: severity,
			Message:  fmt.Sprintf(format, args...),
			Snippet:  snippet(line),
		}
	}

	tokens := translate.Tokens(source)
	var errors []LintError

	for _, tok := range tokens {
		switch tok.Type {
		case token.ILLEGAL:
			errors = append(errors, report(tok.Line, SeverityError, "%s", describeIllegal(tok.Literal)))
		case token.IDENT:
			if mangle.IsReserved(tok.Literal) {
				errors = append(errors, report(tok.Line, SeverityError, "identifier %q is reserved", tok.Literal))
			} else if mangle.IsHostKeyword(tok.Literal) {
				errors = append(errors, report(tok.Line, SeverityWarning, "%q is a Lua keyword and will be renamed", tok.Literal))
			}
		}
	}

	for _, be := range checkBlockTermination(tokens) {
		errors = append(errors, report(be.line, SeverityError, "%s", be.message))
	}

	if hasErrors(errors) {
		return errors
	}

	code, err := translate.Translate(source)
	if err != nil {
		return append(errors, report(0, SeverityError, "%v", err))
	}
	if err := c.harness.Compile(path, code); err != nil {
		msg := mangle.Demangle(err.Error())
		return append(errors, report(syntaxLine(msg), SeverityError, "%s", msg))
	}

	for _, ug := range checkUndefinedGlobals(tokens) {
		errors = append(errors, report(ug.line, SeverityWarning, "%q is used but never assigned", ug.name))
	}
	return errors
}

func hasErrors(errors []LintError) bool {
	for _, e := range errors {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func describeIllegal(literal string) string {
	switch {
	case strings.HasPrefix(literal, "--["):
		return "unterminated long comment"
	case strings.HasPrefix(literal, "["):
		return "unterminated long string"
	case strings.HasPrefix(literal, `"`), strings.HasPrefix(literal, "'"):
		return "unterminated string"
	}
	return fmt.Sprintf("unexpected character %q", literal)
}

var syntaxLineRegex = regexp.MustCompile(`line:(\d+)`)

// syntaxLine extracts the line number from an interpreter syntax error. The
// translator keeps line numbers intact, so it points into the Koda source.
func syntaxLine(msg string) int {
	match := syntaxLineRegex.FindStringSubmatch(msg)
	if match == nil {
		return 0
	}
	line, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return line
}

type blockError struct {
	line    int
	message string
}

type openBlock struct {
	tok token.Token
}

func checkBlockTermination(tokens []token.Token) []blockError {
	var stack []openBlock

	for _, tok := range tokens {
		switch tok.Type {
		case token.FUNCTION, token.DO, token.IF, token.REPEAT:
			stack = append(stack, openBlock{tok: tok})
		case token.END, token.UNTIL:
			if len(stack) == 0 {
				return []blockError{{tok.Line, fmt.Sprintf("unexpected %q", tok.Literal)}}
			}
			top := stack[len(stack)-1]
			if (tok.Type == token.UNTIL) != (top.tok.Type == token.REPEAT) {
				return []blockError{{tok.Line, fmt.Sprintf("%q on line %d cannot be closed by %q",
					top.tok.Literal, top.tok.Line, tok.Literal)}}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		names := make([]string, 0, len(stack))
		for _, b := range stack {
			names = append(names, fmt.Sprintf("%s (line %d)", b.tok.Literal, b.tok.Line))
		}
		return []blockError{{stack[0].tok.Line, "unclosed block(s): " + strings.Join(names, ", ")}}
	}
	return nil
}
