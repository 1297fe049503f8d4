// Package config loads the algoviz server configuration from YAML or TOML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/algoviz/pkg/algorithms"
	"github.com/aretw0/algoviz/pkg/cookies"
)

const (
	DefaultAddr      = ":8080"
	DefaultContainer = "viz"
	DefaultLogLevel  = "info"
	DefaultPageTTL   = 24 * time.Hour
	DefaultIdleTime  = 30 * time.Minute

	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config is the server configuration.
type Config struct {
	Addr      string `yaml:"addr" toml:"addr"`
	Container string `yaml:"container" toml:"container"`
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	Metrics   bool   `yaml:"metrics" toml:"metrics"`

	// PageIdleTimeout frees live pages without listeners or events for this long.
	// Zero keeps them until closed.
	PageIdleTimeout time.Duration `yaml:"page_idle_timeout" toml:"page_idle_timeout"`

	Store   StoreConfig  `yaml:"store" toml:"store"`
	Cookies CookieConfig `yaml:"cookies" toml:"cookies"`

	// Algorithms holds per-algorithm options keyed by registered name,
	// decoded by each visualizer (see algorithms.Options).
	Algorithms map[string]map[string]any `yaml:"algorithms" toml:"algorithms"`
}

// StoreConfig selects where page records are kept.
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	// Path is the record directory of the file driver.
	Path   string `yaml:"path" toml:"path"`
	// DSN is the connection string of the postgres driver.
	DSN    string `yaml:"dsn" toml:"dsn"`

	Address  string        `yaml:"address" toml:"address"`
	Password string        `yaml:"password" toml:"password"`
	DB       int           `yaml:"db" toml:"db"`
	Prefix   string        `yaml:"prefix" toml:"prefix"`
	TTL      time.Duration `yaml:"ttl" toml:"ttl"`
}

type CookieConfig struct {
	ExpiryDays int `yaml:"expiry_days" toml:"expiry_days"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Addr:      DefaultAddr,
		Container: DefaultContainer,
		LogLevel:  DefaultLogLevel,
		Metrics:   true,
		Store: StoreConfig{
			Driver:  StoreMemory,
			Address: "localhost:6379",
			TTL:     DefaultPageTTL,
		},
		Cookies: CookieConfig{ExpiryDays: cookies.DefaultExpiryDays},

		PageIdleTimeout: DefaultIdleTime,
	}
}

// Load reads path over the defaults. Files ending in .toml are parsed as
// TOML, anything else as YAML. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unmarshal = toml.Unmarshal
	}
	if err := unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values that would otherwise fail at first use.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case StoreMemory, StoreRedis, StoreFile:
	case StorePostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn: required by the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}
	if c.PageIdleTimeout < 0 {
		errs = append(errs, errors.New("page_idle_timeout: must not be negative"))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, errors.New("store.ttl: must not be negative"))
	}
	if c.Cookies.ExpiryDays <= 0 {
		errs = append(errs, errors.New("cookies.expiry_days: must be positive"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	for name, opts := range c.Algorithms {
		if _, err := algorithms.DecodeOptions(opts); err != nil {
			errs = append(errs, fmt.Errorf("algorithms.%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
