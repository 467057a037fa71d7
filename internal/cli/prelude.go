package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/koda-lang/koda/internal/config"
	"github.com/koda-lang/koda/internal/prelude"
)

// PreludeCommand lists the Swedish names every program starts with.
type PreludeCommand struct {
	stdout io.Writer
	stderr io.Writer
	lua    *bool
	group  *string
}

// NewPreludeCommand constructs a prelude command.
func NewPreludeCommand(stdout, stderr io.Writer) *PreludeCommand {
	return &PreludeCommand{stdout: stdout, stderr: stderr}
}

func (c *PreludeCommand) Name() string {
	return "prelude"
}

func (c *PreludeCommand) Summary() string {
	return "List the built-in Swedish functions"
}

func (c *PreludeCommand) RegisterFlags(fs *flag.FlagSet) {
	c.lua = fs.Bool("lua", false, "print the prelude as the Lua source that is loaded")
	c.group = fs.String("group", "", "only list one group (grund, sträng, tabell, matte, fil, system)")
}

func (c *PreludeCommand) Run(_ context.Context, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	out := newConsole(c.stdout, c.stderr, settings)

	if c.lua != nil && *c.lua {
		src, err := prelude.Source()
		if err != nil {
			return err
		}
		out.Write(src)
		return nil
	}

	aliases, err := prelude.Aliases()
	if err != nil {
		return err
	}

	filter := ""
	if c.group != nil {
		filter = strings.TrimSpace(*c.group)
	}

	var order []string
	byGroup := make(map[string][]string)
	for _, a := range aliases {
		if filter != "" && a.Group != filter {
			continue
		}
		if _, seen := byGroup[a.Group]; !seen {
			order = append(order, a.Group)
		}
		byGroup[a.Group] = append(byGroup[a.Group], fmt.Sprintf("%-14s %s", a.Name, a.Doc))
	}

	if len(order) == 0 {
		out.Warn("No prelude group named %q", filter)
		return newSilentExitError(1)
	}
	for _, group := range order {
		out.Section(group)
		out.List(byGroup[group])
	}
	return nil
}
