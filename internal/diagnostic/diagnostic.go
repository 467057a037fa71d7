// Package diagnostic renders errors and interpreter values as Swedish text.
package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/koda-lang/koda/internal/harness"
	"github.com/koda-lang/koda/internal/koda/mangle"
	"github.com/koda-lang/koda/internal/koda/translate"
)

const (
	// Header introduces every diagnostic printed for a failing program.
	Header = "Hoppsan! Det finns ett problem i din kod!"

	syntaxPreamble = "Fel: Det är ett syntax-fel som har uppstått.\n" +
		"De brukar bero på att man stavat fel på en variabel eller glömt något tecken.\n" +
		"Här är ett meddelande på engelska som berättar om felet:\n"
	runtimePreamble = "Fel: Det är ett runtime-fel som har uppstått.\n" +
		"Här är ett meddelande på engelska som berättar om felet:\n"
	internalPreamble = "Fel: Något gick fel inuti Koda, inte i din kod.\n" +
		"Rapportera gärna felet. Här är meddelandet på engelska:\n"
	genericPreamble = "Fel: Här är en text på engelska där felet förklaras:\n"
)

// Format describes err for the user. It never panics; a nil error yields "".
func Format(err error) string {
	if err == nil {
		return ""
	}

	var reserved *translate.ReservedError
	if errors.As(err, &reserved) {
		return fmt.Sprintf("Fel: Namnet %q på rad %d kan inte användas eftersom det är reserverat av Koda.",
			reserved.Name, reserved.Line)
	}

	var herr *harness.Error
	if !errors.As(err, &herr) {
		return genericPreamble + mangle.Demangle(err.Error())
	}

	msg := mangle.Demangle(herr.Message)
	switch herr.Kind {
	case harness.KindSyntax, harness.KindIncomplete:
		return syntaxPreamble + msg
	case harness.KindRuntime:
		return runtimePreamble + msg
	case harness.KindInternal:
		return internalPreamble + msg
	default:
		return genericPreamble + msg
	}
}

// Traceback returns the demangled interpreter stack of a runtime error, or ""
// when err carries none.
func Traceback(err error) string {
	var herr *harness.Error
	if !errors.As(err, &herr) {
		return ""
	}
	return mangle.Demangle(strings.TrimSpace(herr.Traceback))
}

// Value renders one interpreter value the way the REPL shows it.
func Value(v lua.LValue) string {
	switch value := v.(type) {
	case nil, *lua.LNilType:
		return "ingenting"
	case lua.LBool:
		if value {
			return "sant"
		}
		return "falskt"
	case lua.LNumber:
		return value.String()
	case lua.LString:
		return `"` + string(value) + `"`
	case *lua.LTable:
		return "tabell"
	case *lua.LFunction:
		return "funktion"
	case *lua.LState:
		return "tråd"
	case *lua.LUserData:
		return "användardata"
	case lua.LChannel:
		return "kanal"
	default:
		return mangle.Demangle(v.String())
	}
}

// Values renders a list of values joined by tabs.
func Values(values []lua.LValue) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Value(v)
	}
	return strings.Join(parts, "\t")
}
