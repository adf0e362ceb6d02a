// ABOUTME: Standard filesystem paths for dore configuration
// ABOUTME: Resolves $XDG_CONFIG_HOME/dore (or ~/.config/dore); DORE_CONFIG names the file directly

package config

import (
	"os"
	"path/filepath"
)

const (
	appDirName     = "dore"
	configFileName = "config.yaml"
)

// Dir returns the user config directory for dore.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(home, ".config", appDirName)
}

// File returns the config file path; DORE_CONFIG overrides the default.
func File() string {
	if p := os.Getenv("DORE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), configFileName)
}
