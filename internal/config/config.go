package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const defaultAPITimeout = 30 * time.Second

// Config holds all workapi configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Sync     SyncConfig     `toml:"sync"`
	Accounts AccountsConfig `toml:"accounts"`
	Gmail    GmailConfig    `toml:"gmail"`
	Urgency  UrgencyConfig  `toml:"urgency"`
	Log      LogConfig      `toml:"log"`
}

// APIConfig points the client at a Work API deployment.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GmailConfig holds Gmail OAuth credentials.
// Users can override them via config file or env vars.
type GmailConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// SyncConfig holds email synchronization settings.
type SyncConfig struct {
	Interval     string `toml:"interval"`
	InitialCount int    `toml:"initial_count"`
	Provider     string `toml:"provider"` // default for account add
}

// AccountsConfig holds account selection settings.
type AccountsConfig struct {
	Default string `toml:"default"`
}

// UrgencyConfig lists literal sender and keyword patterns that mark an
// email as urgent when it is displayed.
type UrgencyConfig struct {
	Contacts []string `toml:"contacts"`
	Keywords []string `toml:"keywords"`
}

// LogConfig controls the structured logger. An empty File logs to stderr.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "https://api.workapi.dev/v1",
			Timeout: "30s",
		},
		Sync: SyncConfig{
			Interval:     "5m",
			InitialCount: 500,
			Provider:     "workapi",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads config from path. If path is empty, returns defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// APITimeout parses api.timeout, falling back to 30s when it is unset or invalid.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		return defaultAPITimeout
	}
	return d
}

// SyncInterval parses sync.interval for the TUI background sync. Zero
// disables it; an invalid value also yields zero.
func (c *Config) SyncInterval() time.Duration {
	d, err := time.ParseDuration(c.Sync.Interval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ConfigDir returns the workapi config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "workapi")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "workapi")
}

// DataDir returns the workapi data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "workapi")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "workapi")
}
