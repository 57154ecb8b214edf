// Package config handles harvester configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional configuration stored in
// ~/.config/harvest/config.yml.
type Config struct {
	ADSToken  string `yaml:"ads_token,omitempty"`
	RepoURL   string `yaml:"repo_url,omitempty"`
	CachePath string `yaml:"cache_path,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "harvest"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultRepoURL is the document repository harvested when neither
	// flag nor config says otherwise.
	DefaultRepoURL = "http://www.ivoa.net/documents/"

	// DefaultCachePath is where the page cache lives by default.
	DefaultCachePath = ".harvest-cache.db"
)

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/harvest/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the config file. A missing file yields an empty config, not
// an error.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// ResolveToken picks the ADS token: the flag wins, then the ADS_TOKEN
// environment variable, then the config file. Empty means no ADS
// filtering.
func (c *Config) ResolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	if env := os.Getenv("ADS_TOKEN"); env != "" {
		return env
	}
	return c.ADSToken
}

// ResolveRepoURL picks the repository URL: flag, config file, default.
func (c *Config) ResolveRepoURL(flagURL string) string {
	if flagURL != "" {
		return flagURL
	}
	if c.RepoURL != "" {
		return c.RepoURL
	}
	return DefaultRepoURL
}

// ResolveCachePath picks the page cache location: flag, config file,
// default.
func (c *Config) ResolveCachePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if c.CachePath != "" {
		return c.CachePath
	}
	return DefaultCachePath
}
