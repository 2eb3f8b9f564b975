// Package config handles global wikimirror configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// APIKeyEnvVar is the default environment variable consulted for the access
// credential when neither the config nor the flags provide one.
const APIKeyEnvVar = "WIKIMIRROR_API_KEY"

// Config represents the global wikimirror configuration.
type Config struct {
	// DefaultMirror is the name of the mirror used when none is given.
	DefaultMirror string `toml:"default_mirror"`

	// Mirrors maps mirror names to their settings.
	Mirrors map[string]Mirror `toml:"mirrors"`
}

// Mirror describes one wiki project to mirror.
type Mirror struct {
	// URL is the base address of the wiki service.
	URL string `toml:"url"`

	// Project is the project identifier whose wiki is mirrored.
	Project string `toml:"project"`

	// APIKey is the access credential. Prefer APIKeyEnv over putting
	// secrets in the config file.
	APIKey string `toml:"api_key"`

	// APIKeyEnv names an environment variable holding the credential.
	APIKeyEnv string `toml:"api_key_env"`

	// OutputDir is the directory the wiki is mirrored into.
	OutputDir string `toml:"output_dir"`

	// Extension is the filename extension without the dot (default "md").
	Extension string `toml:"extension"`

	// DeleteStale removes local files absent from the remote index.
	// Defaults to true when unset.
	DeleteStale *bool `toml:"delete_stale"`

	// RewriteLinks converts intra-wiki references to relative file links.
	RewriteLinks bool `toml:"rewrite_links"`
}

// GetMirror returns the named mirror, falling back to the default when name
// is empty.
func (c *Config) GetMirror(name string) (Mirror, error) {
	if name == "" {
		name = c.DefaultMirror
	}
	if name == "" {
		if len(c.Mirrors) == 1 {
			for _, m := range c.Mirrors {
				return m, nil
			}
		}
		return Mirror{}, fmt.Errorf("no default mirror configured")
	}
	if m, ok := c.Mirrors[name]; ok {
		return m, nil
	}
	return Mirror{}, fmt.Errorf("mirror '%s' not found in config", name)
}

// ListMirrors returns all configured mirrors keyed by name.
func (c *Config) ListMirrors() map[string]Mirror {
	out := make(map[string]Mirror, len(c.Mirrors))
	for name, m := range c.Mirrors {
		out[name] = m
	}
	return out
}

// ResolveAPIKey returns the credential for a mirror: the literal api_key,
// then the api_key_env variable, then WIKIMIRROR_API_KEY.
func (m Mirror) ResolveAPIKey() string {
	if m.APIKey != "" {
		return m.APIKey
	}
	if m.APIKeyEnv != "" {
		if v := os.Getenv(m.APIKeyEnv); v != "" {
			return v
		}
	}
	return os.Getenv(APIKeyEnvVar)
}

// DeleteStaleEnabled reports the effective stale-deletion setting.
func (m Mirror) DeleteStaleEnabled() bool {
	if m.DeleteStale == nil {
		return true
	}
	return *m.DeleteStale
}

// Load loads the configuration from the default location.
// Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/wikimirror/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "wikimirror", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "wikimirror", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
