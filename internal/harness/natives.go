package harness

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/koda-lang/koda/internal/koda/translate"
)

// natives maps Koda names to the Go functions registered in every state.
func (h *Harness) natives() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"skriv":   h.print,
		"fråga":   h.prompt,
		"öppna":   h.openExternal,
		"_TOKENS": h.tokenDump,
	}
}

// print writes its arguments separated by tabs and a newline.
func (h *Harness) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	h.write(strings.Join(parts, "\t") + "\n")
	return 0
}

func (h *Harness) prompt(L *lua.LState) int {
	msg := L.OptString(1, "")
	h.write(msg)
	h.flush()

	line, err := h.readLine()
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LString(line))
	return 1
}

func (h *Harness) openExternal(L *lua.LState) int {
	target := L.CheckString(1)
	if err := h.open(target); err != nil {
		L.RaiseError("kunde inte öppna %q: %v", target, err)
	}
	return 0
}

// tokenDump lexes its argument as Koda source and prints one token per line.
func (h *Harness) tokenDump(L *lua.LState) int {
	src := L.CheckString(1)
	var b strings.Builder
	for _, tok := range translate.Tokens(src) {
		fmt.Fprintln(&b, tok.String())
	}
	h.write(b.String())
	return 0
}
