// Package config loads the advisor's settings from a YAML or TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"klondike/meta"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log        LogConfig        `yaml:"log" toml:"log"`
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Broker     BrokerConfig     `yaml:"broker" toml:"broker"`
	Watch      WatchConfig      `yaml:"watch" toml:"watch"`
	Experiment ExperimentConfig `yaml:"experiment" toml:"experiment"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // zerolog level name
	Pretty bool   `yaml:"pretty" toml:"pretty"` // console output instead of JSON
}

type ServerConfig struct {
	Addr      string  `yaml:"addr" toml:"addr"`
	RateLimit float64 `yaml:"rate_limit" toml:"rate_limit"` // requests per second, 0 = unlimited
	Burst     int     `yaml:"burst" toml:"burst"`
	History   int     `yaml:"history" toml:"history"` // updates kept per session
}

type BrokerConfig struct {
	URL     string `yaml:"url" toml:"url"`
	Subject string `yaml:"subject" toml:"subject"`
	Queue   string `yaml:"queue" toml:"queue"`
	Name    string `yaml:"name" toml:"name"`
}

type WatchConfig struct {
	Path     string `yaml:"path" toml:"path"`         // placement file to follow
	Debounce string `yaml:"debounce" toml:"debounce"` // e.g. "100ms"
}

type ExperimentConfig struct {
	Deals  int    `yaml:"deals" toml:"deals"`
	Seed   uint64 `yaml:"seed" toml:"seed"`
	OutDir string `yaml:"out_dir" toml:"out_dir"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Server: ServerConfig{
			Addr:      meta.DefaultAddr,
			RateLimit: 20,
			Burst:     40,
			History:   meta.DefaultHistory,
		},
		Broker: BrokerConfig{
			URL:     meta.DefaultBrokerURL,
			Subject: meta.DefaultSubject,
			Queue:   meta.DefaultQueue,
			Name:    "klondike-advisor",
		},
		Watch: WatchConfig{
			Path:     "placement.json",
			Debounce: "100ms",
		},
		Experiment: ExperimentConfig{
			Deals:  meta.DefaultDeals,
			Seed:   1,
			OutDir: "results",
		},
	}
}

// Load reads the file at path on top of the defaults. The format follows
// the extension: .yaml/.yml or .toml. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := Unmarshal(filepath.Ext(path), data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Unmarshal decodes data in the format named by ext into cfg.
func Unmarshal(ext string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return fmt.Errorf("%w: parse config file: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Save writes cfg to path in the format named by its extension.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".toml":
		data, err = toml.Marshal(c)
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server address is empty", ErrInvalidConfig)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit cannot be negative: %v", ErrInvalidConfig, c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("%w: burst must be at least 1 when rate limiting: %d", ErrInvalidConfig, c.Server.Burst)
	}
	if c.Server.History < 0 {
		return fmt.Errorf("%w: history cannot be negative: %d", ErrInvalidConfig, c.Server.History)
	}
	if c.Broker.Subject == "" {
		return fmt.Errorf("%w: broker subject is empty", ErrInvalidConfig)
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("%w: invalid debounce %q: %w", ErrInvalidConfig, c.Watch.Debounce, err)
	}
	if c.Experiment.Deals < 0 {
		return fmt.Errorf("%w: deals cannot be negative: %d", ErrInvalidConfig, c.Experiment.Deals)
	}
	return nil
}

func (c *Config) GetDebounce() time.Duration {
	d, _ := time.ParseDuration(c.Watch.Debounce)
	return d
}
