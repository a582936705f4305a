package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("LoadFrom = %v, want nil", err)
		}
		if cfg.TempBranch != DefaultTempBranch {
			t.Errorf("TempBranch = %q, want %q", cfg.TempBranch, DefaultTempBranch)
		}
		if cfg.MainBranch != "" || cfg.Push {
			t.Errorf("unexpected non-default config: %+v", cfg)
		}
	})

	t.Run("parses all settings", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
main_branch = "trunk"
temp_branch = "scratch/pr"
push = true
`)
		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("LoadFrom = %v, want nil", err)
		}
		if cfg.MainBranch != "trunk" {
			t.Errorf("MainBranch = %q, want %q", cfg.MainBranch, "trunk")
		}
		if cfg.TempBranch != "scratch/pr" {
			t.Errorf("TempBranch = %q, want %q", cfg.TempBranch, "scratch/pr")
		}
		if !cfg.Push {
			t.Error("Push = false, want true")
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `main_branch = "trunk"`)
		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("LoadFrom = %v, want nil", err)
		}
		if cfg.TempBranch != DefaultTempBranch {
			t.Errorf("TempBranch = %q, want default %q", cfg.TempBranch, DefaultTempBranch)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `main_branch = [not toml`)
		if _, err := LoadFrom(path); err == nil {
			t.Error("LoadFrom malformed file = nil, want error")
		}
	})

	t.Run("empty temp_branch is rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `temp_branch = ""`)
		if _, err := LoadFrom(path); err == nil {
			t.Error("LoadFrom with empty temp_branch = nil, want error")
		}
	})

	t.Run("temp_branch equal to main_branch is rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
main_branch = "master"
temp_branch = "master"
`)
		if _, err := LoadFrom(path); err == nil {
			t.Error("LoadFrom with temp_branch == main_branch = nil, want error")
		}
	})
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	t.Run("creates file and round-trips", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "prep", "config.toml")
		if err := WriteDefault(path, false); err != nil {
			t.Fatalf("WriteDefault = %v, want nil", err)
		}
		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("LoadFrom after WriteDefault = %v, want nil", err)
		}
		if cfg != Default() {
			t.Errorf("round-tripped config = %+v, want defaults", cfg)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `push = true`)
		err := WriteDefault(path, false)
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("WriteDefault = %v, want already-exists error", err)
		}
		if err := WriteDefault(path, true); err != nil {
			t.Errorf("WriteDefault with force = %v, want nil", err)
		}
	})
}
