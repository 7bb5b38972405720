package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	SocketPath    string        `yaml:"socket_path" env:"TIENDA_SOCKET"`
	DBPath        string        `yaml:"db_path" env:"TIENDA_DB"`
	SubmitTimeout time.Duration `yaml:"submit_timeout" env:"TIENDA_SUBMIT_TIMEOUT"`

	Daemon      DaemonConfig `yaml:"daemon"`
	KeyMappings KeyMappings  `yaml:"key_mappings"`
	ColorScheme ColorScheme  `yaml:"theme"`
}

// DaemonConfig tunes the store daemon
type DaemonConfig struct {
	// RateLimit is requests per second per connection; 0 disables limiting
	RateLimit float64 `yaml:"rate_limit" env:"TIENDA_RATE_LIMIT"`
	Burst     int     `yaml:"burst" env:"TIENDA_RATE_BURST"`
}

const (
	defaultSubmitTimeout = 10 * time.Second
	defaultRateLimit     = 20
	defaultBurst         = 40
)

// loadThemeFile loads and merges theme from TIENDA_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("TIENDA_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load loads config from the user's config directory, then applies
// environment overrides. Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	config := &Config{}

	configPath, err := getConfigPath()
	if err == nil {
		data, readErr := os.ReadFile(configPath)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case !os.IsNotExist(readErr):
			return nil, readErr
		}
	}

	loadThemeFile(config)

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Fill in any missing values with defaults
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tienda", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tienda", "config.yaml"), nil
}

// DataDir returns ~/.tienda, where the socket, database, session and logs live
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tienda"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() error {
	if c.SocketPath == "" || c.DBPath == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		if c.SocketPath == "" {
			c.SocketPath = filepath.Join(dir, "tienda.sock")
		}
		if c.DBPath == "" {
			c.DBPath = filepath.Join(dir, "store.db")
		}
	}

	if c.SubmitTimeout <= 0 {
		c.SubmitTimeout = defaultSubmitTimeout
	}
	if c.Daemon.RateLimit == 0 {
		c.Daemon.RateLimit = defaultRateLimit
	}
	if c.Daemon.Burst <= 0 {
		c.Daemon.Burst = defaultBurst
	}

	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
	return nil
}
