// ABOUTME: Tests for config loading and layered merging
// ABOUTME: Uses temp directories and DORE_CONFIG for isolated file-based tests

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &Settings{Prompt: "QUERY", Theme: "default", Paged: Bool(true), Keys: []string{"id"}}
	over := &Settings{Prompt: "PICK", Paged: Bool(false)}

	got := merge(base, over)
	want := &Settings{Prompt: "PICK", Theme: "default", Paged: Bool(false), Keys: []string{"id"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge() mismatch (-want +got):\n%s", diff)
	}
	if *base.Paged != true {
		t.Error("merge() modified its base")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	if got := merge(nil, nil); got == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
	base := Defaults()
	got := merge(base, nil)
	if got == base {
		t.Error("merge(base, nil) should return a copy")
	}
	if diff := cmp.Diff(base, got); diff != "" {
		t.Errorf("merge(base, nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_KeysReplaced(t *testing.T) {
	t.Parallel()

	got := merge(&Settings{Keys: []string{"a", "b"}}, &Settings{Keys: []string{"c"}})
	if diff := cmp.Diff([]string{"c"}, got.Keys); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if s == nil {
		t.Error("loadFile should return empty settings for a missing file")
	}
}

func TestLoadFile_Valid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "prompt: PICK\ntheme: dark\nmulti: true\npaged: false\nlog_level: debug\nkeys: [name, id]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile() error: %v", err)
	}
	want := &Settings{
		Prompt:   "PICK",
		Theme:    "dark",
		Multi:    Bool(true),
		Paged:    Bool(false),
		LogLevel: "debug",
		Keys:     []string{"name", "id"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("keys: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DORE_PROMPT", "DORE_THEME", "DORE_LOG_LEVEL", "DORE_LOG_FILE", "DORE_KEYS", "NO_COLOR"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Layers(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("prompt: FILE\ntheme: light\nlog_file: ${LOGDIR}/dore.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DORE_CONFIG", path)
	t.Setenv("LOGDIR", "/tmp/logs")
	t.Setenv("DORE_PROMPT", "ENV")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Prompt != "ENV" {
		t.Errorf("Prompt = %q; env should beat file", got.Prompt)
	}
	if got.Theme != "light" {
		t.Errorf("Theme = %q; file should beat defaults", got.Theme)
	}
	if got.LogFile != "/tmp/logs/dore.log" {
		t.Errorf("LogFile = %q; want expanded path", got.LogFile)
	}
	if got.Paged == nil || !*got.Paged {
		t.Error("Paged should default to true")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DORE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(Defaults(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- bad"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DORE_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("DORE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	if got := Dir(); got != filepath.Join("/xdg", "dore") {
		t.Errorf("Dir() = %q", got)
	}
	if got := File(); got != filepath.Join("/xdg", "dore", "config.yaml") {
		t.Errorf("File() = %q", got)
	}
	t.Setenv("DORE_CONFIG", "/etc/dore.yaml")
	if got := File(); got != "/etc/dore.yaml" {
		t.Errorf("File() = %q; DORE_CONFIG should win", got)
	}
}
