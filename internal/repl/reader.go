package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/koda-lang/koda/internal/fsutil"
)

// LineReader supplies input lines to a Session. Prompt returns io.EOF when
// input ends and liner.ErrPromptAborted when the user cancels a line.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(entry string)
	Close() error
}

// Editor is a LineReader backed by liner with history persisted to a file.
type Editor struct {
	state       *liner.State
	historyPath string
}

// NewEditor starts line editing on the terminal. History is read from
// historyPath when it exists and written back on Close. An empty path
// disables persistence.
func NewEditor(historyPath string) *Editor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &Editor{state: state, historyPath: historyPath}
}

func (e *Editor) Prompt(prompt string) (string, error) {
	return e.state.Prompt(prompt)
}

func (e *Editor) AppendHistory(entry string) {
	e.state.AppendHistory(entry)
}

// Close saves history and restores the terminal.
func (e *Editor) Close() error {
	defer e.state.Close()
	if e.historyPath == "" {
		return nil
	}
	if err := fsutil.EnsureParentDir(e.historyPath); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	f, err := os.Create(e.historyPath)
	if err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	defer f.Close()
	if _, err := e.state.WriteHistory(f); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Scanner is a LineReader over a plain stream, used when input is not a
// terminal. History is kept in memory only.
type Scanner struct {
	in      *bufio.Reader
	out     io.Writer
	History []string
}

// NewScanner reads lines from in and echoes prompts to out. Passing a
// *bufio.Reader lets the interpreter read from the same buffer.
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	return &Scanner{in: bufio.NewReader(in), out: out}
}

func (s *Scanner) Prompt(prompt string) (string, error) {
	if s.out != nil {
		_, _ = io.WriteString(s.out, prompt)
	}
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *Scanner) AppendHistory(entry string) {
	s.History = append(s.History, entry)
}

func (s *Scanner) Close() error {
	return nil
}
