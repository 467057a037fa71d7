package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Mode is a tri-state switch used by colour and pause settings.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

const (
	DefaultTomlPath = "koda.toml"
	DefaultHelpURL  = "https://github.com/koda-lang/koda"
)

// Settings holds the validated configuration of the CLI.
type Settings struct {
	Color       Mode
	PauseOnExit Mode
	HistoryFile string
	HelpURL     string

	// Path is the configuration file that was merged, empty when none was found.
	Path string
}

// Defaults returns the settings used when neither file nor environment
// override anything.
func Defaults() Settings {
	return Settings{
		Color:       ModeAuto,
		PauseOnExit: ModeAuto,
		HelpURL:     DefaultHelpURL,
	}
}

// Load applies defaults, merges koda.toml (or the file named by KODA_CONFIG),
// then environment variables, and validates the result.
func Load() (Settings, error) {
	settings := Defaults()

	path := strings.TrimSpace(os.Getenv("KODA_CONFIG"))
	explicit := path != ""
	if !explicit {
		path = filepath.Join(".", DefaultTomlPath)
	}
	if err := mergeTomlConfig(&settings, path, explicit); err != nil {
		return Settings{}, err
	}

	if err := mergeEnv(&settings); err != nil {
		return Settings{}, err
	}

	if err := validateURL(settings.HelpURL, "help_url"); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func mergeTomlConfig(settings *Settings, path string, required bool) error {
	cfg, err := LoadToml(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	settings.Path = path

	if raw := strings.TrimSpace(cfg.Defaults.Color); raw != "" {
		mode, err := ParseMode(raw, "color")
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		settings.Color = mode
	}
	if raw := strings.TrimSpace(cfg.Defaults.PauseOnExit); raw != "" {
		mode, err := ParseMode(raw, "pause_on_exit")
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		settings.PauseOnExit = mode
	}
	if history := strings.TrimSpace(cfg.Defaults.HistoryFile); history != "" {
		settings.HistoryFile = history
	}
	if help := strings.TrimSpace(cfg.Defaults.HelpURL); help != "" {
		settings.HelpURL = help
	}
	return nil
}

func mergeEnv(settings *Settings) error {
	if raw := strings.TrimSpace(os.Getenv("KODA_COLOR")); raw != "" {
		mode, err := ParseMode(raw, "KODA_COLOR")
		if err != nil {
			return err
		}
		settings.Color = mode
	}
	if raw := strings.TrimSpace(os.Getenv("KODA_PAUSE")); raw != "" {
		mode, err := ParseMode(raw, "KODA_PAUSE")
		if err != nil {
			return err
		}
		settings.PauseOnExit = mode
	}
	if history := strings.TrimSpace(os.Getenv("KODA_HISTORY")); history != "" {
		settings.HistoryFile = history
	}
	if help := strings.TrimSpace(os.Getenv("KODA_HELP_URL")); help != "" {
		settings.HelpURL = help
	}
	return nil
}

// ParseMode accepts auto, always or never in any case. name is used in the
// error message.
func ParseMode(raw, name string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case ModeAuto, ModeAlways, ModeNever:
		return mode, nil
	}
	return "", fmt.Errorf("%s must be one of auto, always or never, got %q", name, raw)
}

// Enabled resolves the mode against the result of automatic detection.
func (m Mode) Enabled(detected bool) bool {
	switch m {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return detected
	}
}

func validateURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be a valid absolute URL, got %q", name, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", name, raw)
	}
	return nil
}
