package diagnostic

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/koda-lang/koda/internal/harness"
	"github.com/koda-lang/koda/internal/koda/translate"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantPrefix string
		wantSuffix string
	}{
		{
			name:       "syntax",
			err:        &harness.Error{Kind: harness.KindSyntax, Message: "near 'EOF'"},
			wantPrefix: syntaxPreamble,
			wantSuffix: "near 'EOF'",
		},
		{
			name:       "incomplete reads like syntax",
			err:        &harness.Error{Kind: harness.KindIncomplete, Message: "x"},
			wantPrefix: syntaxPreamble,
			wantSuffix: "x",
		},
		{
			name:       "runtime demangles",
			err:        &harness.Error{Kind: harness.KindRuntime, Message: "test.kod:2: attempt to index r__ae__knare"},
			wantPrefix: runtimePreamble,
			wantSuffix: "attempt to index räknare",
		},
		{
			name:       "escaped keyword",
			err:        &harness.Error{Kind: harness.KindRuntime, Message: "bad __escaped_host_keyword__end"},
			wantPrefix: runtimePreamble,
			wantSuffix: "bad end",
		},
		{
			name:       "internal",
			err:        &harness.Error{Kind: harness.KindInternal, Message: "load prelude: boom"},
			wantPrefix: internalPreamble,
			wantSuffix: "load prelude: boom",
		},
		{
			name:       "other kind",
			err:        &harness.Error{Kind: harness.KindOther, Message: "__oe__ppna"},
			wantPrefix: genericPreamble,
			wantSuffix: "öppna",
		},
		{
			name:       "wrapped",
			err:        fmt.Errorf("run: %w", &harness.Error{Kind: harness.KindRuntime, Message: "m"}),
			wantPrefix: runtimePreamble,
			wantSuffix: "m",
		},
		{
			name:       "plain error",
			err:        errors.New("v__ae__rde"),
			wantPrefix: genericPreamble,
			wantSuffix: "värde",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.err)
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Fatalf("missing preamble in %q", got)
			}
			if !strings.HasSuffix(got, tt.wantSuffix) {
				t.Fatalf("want suffix %q in %q", tt.wantSuffix, got)
			}
		})
	}
}

func TestFormatReservedName(t *testing.T) {
	got := Format(&translate.ReservedError{Name: "__escaped_host_keyword__x", Line: 3, Column: 1})
	if !strings.Contains(got, "rad 3") || !strings.Contains(got, "reserverat") {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestTraceback(t *testing.T) {
	err := &harness.Error{
		Kind:      harness.KindRuntime,
		Message:   "boom",
		Traceback: "stack traceback:\n\tprog.kod:2: in function 'r__ae__kna'\n",
	}
	want := "stack traceback:\n\tprog.kod:2: in function 'räkna'"
	if got := Traceback(err); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got := Traceback(errors.New("plain")); got != "" {
		t.Fatalf("expected no traceback, got %q", got)
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestValue(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	tests := []struct {
		value lua.LValue
		want  string
	}{
		{lua.LNil, "ingenting"},
		{nil, "ingenting"},
		{lua.LFalse, "falskt"},
		{lua.LTrue, "sant"},
		{lua.LNumber(2), "2"},
		{lua.LNumber(2.5), "2.5"},
		{lua.LString(`a "b"`), `"a "b""`},
		{L.NewTable(), "tabell"},
		{L.NewFunction(func(*lua.LState) int { return 0 }), "funktion"},
		{L.NewUserData(), "användardata"},
	}
	for _, tt := range tests {
		if got := Value(tt.value); got != tt.want {
			t.Fatalf("Value(%v): want %q, got %q", tt.value, tt.want, got)
		}
	}

	thread, _ := L.NewThread()
	if got := Value(thread); got != "tråd" {
		t.Fatalf("thread: got %q", got)
	}
}

func TestValuesJoinsWithTabs(t *testing.T) {
	got := Values([]lua.LValue{lua.LNumber(1), lua.LString("x"), lua.LTrue})
	if want := "1\t\"x\"\tsant"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got := Values(nil); got != "" {
		t.Fatalf("no values should render empty, got %q", got)
	}
}
