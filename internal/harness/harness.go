// Package harness owns the Lua interpreter that runs translated Koda programs.
package harness

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skratchdot/open-golang/open"
	lua "github.com/yuin/gopher-lua"

	"github.com/koda-lang/koda/internal/koda/mangle"
	"github.com/koda-lang/koda/internal/prelude"
	"github.com/koda-lang/koda/internal/version"
)

// Options configures a new interpreter state.
type Options struct {
	// Args is the program path followed by its arguments. When nil, no
	// _FILENAME or _PARAMETERS globals are bound.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer

	// Open hands a path or URL to the operating system. Defaults to open.Run.
	Open func(target string) error
}

// Harness wraps one interpreter state. It is not safe for concurrent use.
type Harness struct {
	state  *lua.LState
	stdin  *bufio.Reader
	stdout io.Writer
	open   func(string) error
}

// New builds an interpreter state with the injected globals, the native
// functions and the prelude loaded. Failures are KindInternal.
func New(opts Options) (*Harness, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Open == nil {
		opts.Open = open.Run
	}

	h := &Harness{
		state:  lua.NewState(),
		stdin:  bufio.NewReader(opts.Stdin),
		stdout: opts.Stdout,
		open:   opts.Open,
	}
	if err := h.setup(opts.Args); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

func (h *Harness) setup(args []string) error {
	L := h.state

	if args != nil {
		filename := ""
		if len(args) > 0 {
			filename = args[0]
		}
		params := L.NewTable()
		if len(args) > 1 {
			for i, arg := range args[1:] {
				params.RawSetInt(i+1, lua.LString(arg))
			}
		}
		for _, name := range []string{"_FILENAME", "_FILNAMN"} {
			L.SetGlobal(name, lua.LString(filename))
		}
		for _, name := range []string{"_PARAMETERS", "_PARAMETRAR"} {
			L.SetGlobal(name, params)
		}
	}
	L.SetGlobal("_VERSION", lua.LString(version.Label()))

	for name, fn := range h.natives() {
		L.SetGlobal(mangle.Mangle(name), L.NewFunction(fn))
	}

	src, err := prelude.Source()
	if err != nil {
		return internalError("prepare prelude", err)
	}
	fn, err := L.Load(strings.NewReader(src), prelude.Name)
	if err != nil {
		return internalError("load prelude", err)
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		return internalError("run prelude", err)
	}
	return nil
}

// Compile loads luaSource without running it.
func (h *Harness) Compile(name, luaSource string) error {
	if _, err := h.state.Load(strings.NewReader(luaSource), name); err != nil {
		return loadError(err)
	}
	return nil
}

// Run loads and executes luaSource, discarding its results.
func (h *Harness) Run(name, luaSource string) error {
	_, err := h.Eval(name, luaSource)
	return err
}

// Eval loads and executes luaSource and returns every value the chunk returns.
func (h *Harness) Eval(name, luaSource string) ([]lua.LValue, error) {
	L := h.state
	fn, err := L.Load(strings.NewReader(luaSource), name)
	if err != nil {
		return nil, loadError(err)
	}

	base := L.GetTop()
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.SetTop(base)
		return nil, callError(err)
	}

	top := L.GetTop()
	values := make([]lua.LValue, 0, top-base)
	for i := base + 1; i <= top; i++ {
		values = append(values, L.Get(i))
	}
	L.SetTop(base)
	return values, nil
}

// Close releases the interpreter state.
func (h *Harness) Close() {
	if h.state != nil {
		h.state.Close()
		h.state = nil
	}
}

func (h *Harness) write(text string) {
	_, _ = io.WriteString(h.stdout, text)
}

func (h *Harness) flush() {
	if f, ok := h.stdout.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

// readLine reads one line and strips a trailing "\n" and an optional "\r"
// before it.
func (h *Harness) readLine() (string, error) {
	line, err := h.stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
