package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/koda-lang/koda/internal/config"
)

// ConfigCommand shows the effective configuration or writes it to koda.toml.
type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
	init   *bool
	force  *bool
}

// NewConfigCommand constructs a config command.
func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{stdout: stdout, stderr: stderr}
}

func (c *ConfigCommand) Name() string {
	return "config"
}

func (c *ConfigCommand) Summary() string {
	return "Show the effective configuration or create koda.toml"
}

func (c *ConfigCommand) RegisterFlags(fs *flag.FlagSet) {
	c.init = fs.Bool("init", false, "write the effective configuration to koda.toml")
	c.force = fs.Bool("force", false, "overwrite an existing koda.toml")
}

func (c *ConfigCommand) Run(_ context.Context, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	out := newConsole(c.stdout, c.stderr, settings)

	if c.init == nil || !*c.init {
		if settings.Path != "" {
			out.Info("Loaded %s", settings.Path)
		}
		return config.EncodeToml(c.stdout, settings.TomlFile())
	}

	path := filepath.Join(".", config.DefaultTomlPath)
	if _, err := os.Stat(path); err == nil && (c.force == nil || !*c.force) {
		out.Error("%s already exists; use -force to overwrite", path)
		return newSilentExitError(1)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := config.SaveToml(path, settings.TomlFile()); err != nil {
		return err
	}
	out.Success("Wrote %s", path)
	return nil
}
