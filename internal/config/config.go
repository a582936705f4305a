// Package config loads prep's TOML configuration from
// ~/.config/prep/config.toml. All settings are optional; flags and the
// invocation name take precedence over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultTempBranch is the reserved scratch branch name used to stage
// the squash. It is created fresh each run and deleted at the end.
const DefaultTempBranch = "prep/squash"

// Config holds the prep configuration.
type Config struct {
	// MainBranch overrides main-branch detection. Empty means detect
	// (master, then main).
	MainBranch string `toml:"main_branch"`

	// TempBranch is the reserved scratch branch for staging the squash.
	TempBranch string `toml:"temp_branch"`

	// Push makes `prep squash` force-push by default, as if invoked
	// as prep-push.
	Push bool `toml:"push"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TempBranch: DefaultTempBranch,
	}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "prep", "config.toml"), nil
}

// Load reads the config file, falling back to defaults when it does not
// exist. A malformed file is an error; a missing one is not.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values that would make the
// pipeline unsafe.
func (c *Config) Validate() error {
	if c.TempBranch == "" {
		return fmt.Errorf("temp_branch must not be empty")
	}
	if c.TempBranch == c.MainBranch {
		return fmt.Errorf("temp_branch %q must differ from main_branch", c.TempBranch)
	}
	return nil
}

// WriteDefault creates the config file with the default contents.
// Refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "# prep configuration"); err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(Default()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
