// ABOUTME: Environment handling: ${VAR} expansion in config strings and DORE_* overrides
// ABOUTME: NO_COLOR forces the monochrome theme

package config

import (
	"os"
	"regexp"
	"strings"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	if s == nil {
		return
	}
	s.Prompt = expandEnv(s.Prompt)
	s.Theme = expandEnv(s.Theme)
	s.LogFile = expandEnv(s.LogFile)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// FromEnv returns the settings layer given by DORE_* variables.
func FromEnv() *Settings {
	s := &Settings{
		Prompt:   os.Getenv("DORE_PROMPT"),
		Theme:    os.Getenv("DORE_THEME"),
		LogLevel: os.Getenv("DORE_LOG_LEVEL"),
		LogFile:  os.Getenv("DORE_LOG_FILE"),
	}
	if keys := os.Getenv("DORE_KEYS"); keys != "" {
		s.Keys = SplitKeys([]string{keys})
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		s.Theme = "monochrome"
	}
	return s
}

// SplitKeys flattens repeated and comma-separated key lists, dropping blanks.
func SplitKeys(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, k := range strings.Split(r, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
	}
	return out
}
