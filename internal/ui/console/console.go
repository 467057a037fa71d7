// Package console writes styled text for the Koda CLI and REPL.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiBlue   = "\033[34m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiGray   = "\033[90m"
)

// Writer serialises styled output to stdout and stderr.
type Writer struct {
	out   io.Writer
	err   io.Writer
	theme theme

	mu    sync.Mutex
	wrote bool
}

// Option customises writer behaviour.
type Option func(*options)

type options struct {
	colorOverride *bool
}

// WithColors forces colour output on or off regardless of terminal detection.
func WithColors(enabled bool) Option {
	return func(o *options) {
		o.colorOverride = ptr(enabled)
	}
}

func ptr[T any](v T) *T {
	return &v
}

// New constructs a console writer. NO_COLOR always wins; otherwise an
// override applies, and without one colours follow whether out is a terminal.
func New(out, err io.Writer, opts ...Option) *Writer {
	if out == nil {
		out = io.Discard
	}
	if err == nil {
		err = io.Discard
	}

	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var enabled bool
	switch {
	case hasNoColor():
		enabled = false
	case cfg.colorOverride != nil:
		enabled = *cfg.colorOverride
	default:
		enabled = IsTerminal(out)
	}

	return &Writer{
		out:   out,
		err:   err,
		theme: theme{colorEnabled: enabled},
	}
}

func hasNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// IsTerminal reports whether v is a file descriptor attached to a terminal.
func IsTerminal(v any) bool {
	file, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// ColorsEnabled reports whether ANSI styling is applied.
func (w *Writer) ColorsEnabled() bool {
	return w.theme.colorEnabled
}

// Section prints a highlighted section heading.
func (w *Writer) Section(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.wrote {
		_, _ = fmt.Fprintln(w.out)
	}

	headline := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	_, _ = fmt.Fprintln(w.out, w.theme.style(headline, ansiBold, ansiBlue))
	w.wrote = true
}

// Info prints a neutral informational line.
func (w *Writer) Info(format string, args ...any) {
	w.printLine(w.out, "[i]", ansiBlue, nil, format, args...)
}

// Success prints a success line.
func (w *Writer) Success(format string, args ...any) {
	w.printLine(w.out, "[+]", ansiGreen, []string{ansiBold}, format, args...)
}

// Warn prints a warning line to stderr.
func (w *Writer) Warn(format string, args ...any) {
	w.printLine(w.err, "[!]", ansiYellow, nil, format, args...)
}

// Error prints an error line to stderr.
func (w *Writer) Error(format string, args ...any) {
	w.printLine(w.err, "[x]", ansiRed, []string{ansiBold}, format, args...)
}

// Problem prints a failing program's report: a red header, a blank line and
// the body verbatim.
func (w *Writer) Problem(header, body string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintln(w.out, w.theme.style(header, ansiBold, ansiRed))
	_, _ = fmt.Fprintln(w.out)
	_, _ = fmt.Fprintln(w.out, strings.TrimRight(body, "\n"))
	w.wrote = true
}

// Code prints generated source to stderr, dimmed.
func (w *Writer) Code(source string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(source, "\n"), "\n") {
		_, _ = fmt.Fprintln(w.err, w.theme.style(line, ansiGray))
	}
}

// List prints a bulleted list to stdout.
func (w *Writer) List(items []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(items) == 0 {
		return
	}
	bullet := w.theme.style("-", ansiGray)
	for _, item := range items {
		_, _ = fmt.Fprintf(w.out, "    %s %s\n", bullet, strings.TrimSpace(item))
	}
	w.wrote = true
}

// RawLine prints a line verbatim to stdout.
func (w *Writer) RawLine(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprintf(w.out, format+"\n", args...)
	w.wrote = true
}

// Write emits text to stdout without forcing a trailing newline.
func (w *Writer) Write(text string) {
	if text == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprint(w.out, text)
	w.wrote = true
}

// WriteErr emits text to stderr without forcing a newline.
func (w *Writer) WriteErr(text string) {
	if text == "" {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, _ = fmt.Fprint(w.err, text)
	w.wrote = true
}

func (w *Writer) printLine(target io.Writer, icon, iconColor string, msgStyles []string, format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(target, "  %s %s\n", w.theme.style(icon, iconColor, ansiBold), w.theme.style(msg, msgStyles...))
	w.wrote = true
}

type theme struct {
	colorEnabled bool
}

func (t theme) style(text string, codes ...string) string {
	if !t.colorEnabled || len(codes) == 0 {
		return text
	}
	var b strings.Builder
	for _, code := range codes {
		b.WriteString(code)
	}
	b.WriteString(text)
	b.WriteString(ansiReset)
	return b.String()
}
