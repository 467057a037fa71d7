package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/koda-lang/koda/internal/fsutil"
)

// TomlFile represents the structure of koda.toml.
type TomlFile struct {
	Defaults TomlDefaults `toml:"defaults"`
}

// TomlDefaults is the [defaults] table.
type TomlDefaults struct {
	Color       string `toml:"color,omitempty"`
	PauseOnExit string `toml:"pause_on_exit,omitempty"`
	HistoryFile string `toml:"history_file,omitempty"`
	HelpURL     string `toml:"help_url,omitempty"`
}

// LoadToml loads koda.toml into a TomlFile structure.
func LoadToml(path string) (TomlFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TomlFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg TomlFile
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return TomlFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// EncodeToml writes cfg as TOML.
func EncodeToml(w io.Writer, cfg TomlFile) error {
	if err := toml.NewEncoder(w).Encode(normaliseToml(cfg)); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// SaveToml writes the provided config back to disk.
func SaveToml(path string, cfg TomlFile) error {
	buf := bytes.Buffer{}
	if err := EncodeToml(&buf, cfg); err != nil {
		return err
	}
	if err := fsutil.EnsureParentDir(path); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), fsutil.FilePerm)
}

func normaliseToml(cfg TomlFile) TomlFile {
	d := &cfg.Defaults
	d.Color = strings.ToLower(strings.TrimSpace(d.Color))
	d.PauseOnExit = strings.ToLower(strings.TrimSpace(d.PauseOnExit))
	d.HistoryFile = strings.TrimSpace(d.HistoryFile)
	d.HelpURL = strings.TrimSpace(d.HelpURL)
	return cfg
}

// TomlFile converts settings into the file layout used by koda.toml.
func (s Settings) TomlFile() TomlFile {
	return TomlFile{Defaults: TomlDefaults{
		Color:       string(s.Color),
		PauseOnExit: string(s.PauseOnExit),
		HistoryFile: s.HistoryFile,
		HelpURL:     s.HelpURL,
	}}
}
