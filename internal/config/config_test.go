package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"KODA_CONFIG", "KODA_COLOR", "KODA_PAUSE", "KODA_HISTORY", "KODA_HELP_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	withChdir(t, t.TempDir())

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings != Defaults() {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestLoadTomlMerge(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	withChdir(t, dir)

	content := `
[defaults]
color = "Never"
pause_on_exit = "always"
history_file = "~/.historik"
help_url = "https://example.com/hjalp"
`
	if err := os.WriteFile(filepath.Join(dir, DefaultTomlPath), []byte(content), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Color != ModeNever || settings.PauseOnExit != ModeAlways {
		t.Fatalf("modes not merged: %+v", settings)
	}
	if settings.HistoryFile != "~/.historik" || settings.HelpURL != "https://example.com/hjalp" {
		t.Fatalf("strings not merged: %+v", settings)
	}
	if settings.Path == "" {
		t.Fatalf("expected Path to record the merged file")
	}
}

func TestEnvOverridesToml(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	withChdir(t, dir)

	if err := os.WriteFile(filepath.Join(dir, DefaultTomlPath), []byte("[defaults]\ncolor = \"never\"\n"), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	t.Setenv("KODA_COLOR", "always")
	t.Setenv("KODA_HISTORY", "/tmp/h")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Color != ModeAlways || settings.HistoryFile != "/tmp/h" {
		t.Fatalf("env did not win: %+v", settings)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	clearEnv(t)
	withChdir(t, t.TempDir())
	t.Setenv("KODA_CONFIG", filepath.Join(t.TempDir(), "saknas.toml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad colour", "KODA_COLOR", "sometimes", "KODA_COLOR"},
		{"bad pause", "KODA_PAUSE", "ja", "KODA_PAUSE"},
		{"bad url", "KODA_HELP_URL", "ftp://example.com", "help_url"},
		{"relative url", "KODA_HELP_URL", "hjalp", "help_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			withChdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error naming %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestModeEnabled(t *testing.T) {
	if !ModeAlways.Enabled(false) || ModeNever.Enabled(true) {
		t.Fatalf("explicit modes should ignore detection")
	}
	if !ModeAuto.Enabled(true) || ModeAuto.Enabled(false) {
		t.Fatalf("auto should follow detection")
	}
}
