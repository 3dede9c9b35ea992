// Package settings loads the sshedit application settings file. This is the
// tool's own YAML config, distinct from the ssh host config it edits.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the on-disk YAML structure.
//
// Example:
//
//	ssh_config: ~/.ssh/config
//	ssh_binary: ssh
//	debounce_ms: 150
type Settings struct {
	// SSHConfig is the host config file to edit. Empty means ~/.ssh/config.
	SSHConfig string `yaml:"ssh_config,omitempty"`

	// SSHBinary is the external client launched on connect. Empty means "ssh".
	SSHBinary string `yaml:"ssh_binary,omitempty"`

	// DebounceMS is the key-repeat suppression window in milliseconds.
	// Zero means the built-in default; negative is invalid.
	DebounceMS int `yaml:"debounce_ms,omitempty"`
}

const defaultDebounceMS = 150

// ErrNotFound is returned when no settings file exists at any candidate
// path. Callers treat it as "use defaults", not as a failure.
var ErrNotFound = errors.New("settings not found")

// Load discovers and parses the settings file. If explicitPath is empty the
// candidates are searched in order:
//  1. $SSHEDIT_CONFIG
//  2. $XDG_CONFIG_HOME/sshedit/settings.yaml
//  3. ~/.config/sshedit/settings.yaml
//
// A missing file yields zero-value Settings and ErrNotFound; a present but
// malformed or invalid file is a real error.
func Load(explicitPath string) (Settings, string, error) {
	var lastErr error = ErrNotFound
	for _, p := range PathCandidates(explicitPath) {
		data, err := os.ReadFile(p)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				lastErr = err
			}
			continue
		}
		var s Settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, p, fmt.Errorf("parse settings %s: %w", p, err)
		}
		if err := s.Validate(); err != nil {
			return Settings{}, p, fmt.Errorf("invalid settings %s: %w", p, err)
		}
		return s, p, nil
	}
	return Settings{}, "", lastErr
}

// PathCandidates returns possible settings file paths in priority order.
func PathCandidates(explicitPath string) []string {
	var out []string
	if explicitPath != "" {
		out = append(out, explicitPath)
	}
	if env := os.Getenv("SSHEDIT_CONFIG"); env != "" {
		out = append(out, env)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, "sshedit", "settings.yaml"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		out = append(out, filepath.Join(home, ".config", "sshedit", "settings.yaml"))
	}
	return out
}

// Validate performs basic sanity checks.
func (s Settings) Validate() error {
	if s.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms: must be >= 0, got %d", s.DebounceMS)
	}
	return nil
}

// ConfigPath returns the ssh host config path to edit, defaulting to
// ~/.ssh/config.
func (s Settings) ConfigPath() string {
	if s.SSHConfig != "" {
		return expandPath(s.SSHConfig)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".ssh", "config")
	}
	return filepath.Join(home, ".ssh", "config")
}

// Binary returns the external ssh client to launch.
func (s Settings) Binary() string {
	if s.SSHBinary != "" {
		return s.SSHBinary
	}
	return "ssh"
}

// Debounce returns the key-repeat suppression window.
func (s Settings) Debounce() time.Duration {
	ms := s.DebounceMS
	if ms == 0 {
		ms = defaultDebounceMS
	}
	return time.Duration(ms) * time.Millisecond
}

// expandPath expands a leading "~" and environment variables in a path.
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if p == "~" || len(p) >= 2 && p[0] == '~' && p[1] == '/' {
		if home, _ := os.UserHomeDir(); home != "" {
			if p == "~" {
				return home
			}
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
