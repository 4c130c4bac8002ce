package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// LogOff disables logging when used as log_file
const LogOff = "off"

type Config struct {
	Data         string `yaml:"data"`
	Strict       bool   `yaml:"strict"`
	Watch        bool   `yaml:"watch"`
	FetchTimeout string `yaml:"fetch_timeout,omitempty"`
	LogFile      string `yaml:"log_file,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// FetchTimeoutDuration returns the HTTP fetch timeout; zero means none
func (c *Config) FetchTimeoutDuration() time.Duration {
	if c.FetchTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 0
	}
	return d
}

// IsRemote returns true if the data location is an http(s) URL
func (c *Config) IsRemote() bool {
	u, err := url.Parse(c.Data)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// LogPath returns the resolved log file path, or "" when logging is off
func (c *Config) LogPath() string {
	switch c.LogFile {
	case LogOff:
		return ""
	case "":
		return filepath.Join(xdg.StateHome, "biasview", "biasview.log")
	}
	return c.LogFile
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "biasview", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (DefaultConfigPath when empty). On first
// run the embedded defaults are written there and returned.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal if the defaults cannot be written: just use them
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Start from defaults so a partial file keeps the rest
	cfg := *defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks field values. Call it again after applying flag overrides.
func (c *Config) Validate() error {
	if c.Data == "" {
		return fmt.Errorf("data is required")
	}
	if u, err := url.Parse(c.Data); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("data url scheme must be http or https, got %q", u.Scheme)
		}
	}
	if c.Watch && c.IsRemote() {
		return fmt.Errorf("watch only works with a local data file")
	}
	if c.FetchTimeout != "" {
		d, err := time.ParseDuration(c.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch_timeout %q: %w", c.FetchTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("fetch_timeout must not be negative")
		}
	}
	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}
