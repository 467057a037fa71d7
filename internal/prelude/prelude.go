// Package prelude builds the Lua fragment that binds Swedish names to the
// Lua standard library. It is loaded into every interpreter state before user
// code runs.
package prelude

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/koda-lang/koda/internal/koda/lexer"
	"github.com/koda-lang/koda/internal/koda/mangle"
	"github.com/koda-lang/koda/internal/koda/token"
)

// Name is the chunk name the prelude is loaded under.
const Name = "prelude"

//go:embed aliases.yaml
var aliasesYAML []byte

// Alias binds a Swedish name to a Lua expression.
type Alias struct {
	Group  string `yaml:"group"`
	Name   string `yaml:"name"`
	Target string `yaml:"target"`
	Doc    string `yaml:"doc"`
}

type aliasFile struct {
	Aliases []Alias `yaml:"aliases"`
}

var (
	once    sync.Once
	aliases []Alias
	source  string
	loadErr error
)

// Aliases returns the alias table in declaration order.
func Aliases() ([]Alias, error) {
	once.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	return append([]Alias(nil), aliases...), nil
}

// Source returns the prelude as Lua source. Alias names are mangled the same
// way the translator mangles identifiers, so user code reaches them by their
// Swedish spelling.
func Source() (string, error) {
	once.Do(load)
	return source, loadErr
}

func load() {
	parsed, err := parse(aliasesYAML)
	if err != nil {
		loadErr = err
		return
	}
	aliases = parsed
	source = render(parsed)
}

func parse(data []byte) ([]Alias, error) {
	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse prelude aliases: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Aliases))
	for i, a := range file.Aliases {
		if err := validate(a); err != nil {
			return nil, fmt.Errorf("prelude alias #%d: %w", i+1, err)
		}
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("prelude alias #%d: duplicate name %q", i+1, a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	return file.Aliases, nil
}

func validate(a Alias) error {
	if strings.TrimSpace(a.Target) == "" {
		return fmt.Errorf("%q has no target", a.Name)
	}
	tokens := lexer.Lex(a.Name)
	if len(tokens) != 1 || tokens[0].Type != token.IDENT {
		return fmt.Errorf("name %q is not a single identifier", a.Name)
	}
	return nil
}

func render(list []Alias) string {
	var b strings.Builder
	for _, a := range list {
		fmt.Fprintf(&b, "%s = %s\n", mangle.Mangle(a.Name), a.Target)
	}
	return b.String()
}
