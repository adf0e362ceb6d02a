// ABOUTME: YAML theme file loading and name resolution
// ABOUTME: Unset palette fields inherit from DefaultPalette; Resolve accepts a builtin name or a path

package theme

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type filePalette struct {
	Prompt *string `yaml:"prompt"`
	Cursor *string `yaml:"cursor"`
	Mark   *string `yaml:"mark"`
	Error  *string `yaml:"error"`
}

type fileTheme struct {
	Name    string      `yaml:"name"`
	Palette filePalette `yaml:"palette"`
}

// LoadFile reads a YAML theme file and returns a Theme.
// Missing palette fields fall back to DefaultPalette values; an explicit
// empty string disables styling for that role.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var ft fileTheme
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("parsing theme file %s: %w", path, err)
	}

	p := DefaultPalette()
	override(&p.Prompt, ft.Palette.Prompt)
	override(&p.Cursor, ft.Palette.Cursor)
	override(&p.Mark, ft.Palette.Mark)
	override(&p.Error, ft.Palette.Error)

	name := ft.Name
	if name == "" {
		name = path
	}
	return &Theme{Name: name, Palette: p}, nil
}

func override(dst *Color, code *string) {
	if code != nil {
		*dst = NewColor(*code)
	}
}

// Resolve returns the builtin theme called name, or loads name as a theme
// file when it looks like a path. An empty name yields the default theme.
func Resolve(name string) (*Theme, error) {
	if name == "" {
		return Builtin("default"), nil
	}
	if th := Builtin(name); th != nil {
		return th, nil
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return LoadFile(name)
	}
	return nil, fmt.Errorf("unknown theme %q (builtin: %s)", name, strings.Join(BuiltinNames(), ", "))
}
