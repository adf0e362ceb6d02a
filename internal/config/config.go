// ABOUTME: Settings loading: defaults, YAML file, environment, then CLI overrides
// ABOUTME: Later layers override earlier ones field by field; unset fields fall through

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the merged configuration. Pointer and empty values mean
// "not set" so a higher layer can tell them apart from explicit values.
type Settings struct {
	Prompt   string   `yaml:"prompt,omitempty"`
	Theme    string   `yaml:"theme,omitempty"`
	Multi    *bool    `yaml:"multi,omitempty"`
	Paged    *bool    `yaml:"paged,omitempty"`
	LogLevel string   `yaml:"log_level,omitempty"`
	LogFile  string   `yaml:"log_file,omitempty"`
	Keys     []string `yaml:"keys,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Prompt:   "QUERY",
		Theme:    "default",
		Multi:    Bool(false),
		Paged:    Bool(true),
		LogLevel: "warn",
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Load builds settings from the defaults, the config file (if present), and
// the environment. A missing file is not an error.
func Load() (*Settings, error) {
	file, err := loadFile(File())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	ResolveEnvVars(file)

	return merge(merge(Defaults(), file), FromEnv()), nil
}

// loadFile reads Settings from a YAML file. Returns empty Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Merge applies override on top of base and returns the result. Neither
// argument is modified.
func Merge(base, override *Settings) *Settings {
	return merge(base, override)
}

func merge(base, override *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if override == nil {
		c := *base
		return &c
	}

	result := *base

	if override.Prompt != "" {
		result.Prompt = override.Prompt
	}
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Multi != nil {
		result.Multi = Bool(*override.Multi)
	}
	if override.Paged != nil {
		result.Paged = Bool(*override.Paged)
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.LogFile != "" {
		result.LogFile = override.LogFile
	}
	if len(override.Keys) > 0 {
		result.Keys = append([]string(nil), override.Keys...)
	}

	return &result
}
