package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/koda-lang/koda/internal/config"
	"github.com/koda-lang/koda/internal/fsutil"
	"github.com/koda-lang/koda/internal/koda/translate"
	"github.com/koda-lang/koda/internal/ui/console"
)

const (
	msgWrongExtension = "Du måste ange en fil som slutar med .kod eller .lua"
	msgMissingFile    = "Du måste ange en fil!"
	msgPause          = "Tryck på ENTER-tangenten för att avsluta programmet."
)

// newConsole builds a console writer honouring the colour setting.
func newConsole(stdout, stderr io.Writer, settings config.Settings) *console.Writer {
	switch settings.Color {
	case config.ModeAlways:
		return console.New(stdout, stderr, console.WithColors(true))
	case config.ModeNever:
		return console.New(stdout, stderr, console.WithColors(false))
	default:
		return console.New(stdout, stderr)
	}
}

// loadSource checks the extension of path and returns its contents ready
// for the interpreter: .kod files are translated, .lua files pass through.
// Failures are reported on out and returned as silent exit errors.
func loadSource(out *console.Writer, path string) (string, error) {
	if !fsutil.IsSourcePath(path) {
		out.Error("%s", msgWrongExtension)
		return "", newSilentExitError(1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		out.Error("Kunde inte läsa filen %s: %v", path, err)
		return "", newSilentExitError(1)
	}
	if fsutil.IsLuaPath(path) {
		return string(data), nil
	}
	code, err := translate.Translate(string(data))
	if err != nil {
		return "", fmt.Errorf("translate %s: %w", path, err)
	}
	return code, nil
}
