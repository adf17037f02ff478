package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// APIBaseURL is the base URL of the back-office REST API that owns
	// revisions, events and stock.
	APIBaseURL string `yaml:"api_base_url"`

	// TimeoutSeconds bounds every outbound API request.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Listen is the HTTP listen address for the facade server.
	Listen string `yaml:"listen"`

	// LocationSlots is the number of location slots per day. The observed
	// deployments run 8.
	LocationSlots int `yaml:"location_slots"`

	// StockLowAbs marks stock as low when at most this many units remain.
	StockLowAbs int64 `yaml:"stock_low_abs"`

	// StockLowRatio marks stock as low when remaining/total is at or
	// below this fraction.
	StockLowRatio float64 `yaml:"stock_low_ratio"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     "http://127.0.0.1:8000/api",
		TimeoutSeconds: 10,
		Listen:         "127.0.0.1:8080",
		LocationSlots:  8,
		StockLowAbs:    3,
		StockLowRatio:  0.20,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://127.0.0.1:8000/api"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.LocationSlots <= 0 {
		c.LocationSlots = 8
	}
	if c.StockLowAbs <= 0 {
		c.StockLowAbs = 3
	}
	if c.StockLowRatio <= 0 {
		c.StockLowRatio = 0.20
	}
}

// Load loads configuration from the given YAML path. A missing file is the
// first run: a default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with 0600
// permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".rentcore-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
