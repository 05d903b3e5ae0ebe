// Package config loads porticus settings from an optional YAML file, then
// overlays PORTICUS_* environment variables and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "PORTICUS_"

type Config struct {
	Classify ClassifyConfig `yaml:"classify"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

type ClassifyConfig struct {
	TextColumns     []int  `yaml:"text_columns" validate:"min=1,dive,gte=0"`
	URLColumn       int    `yaml:"url_column" validate:"gte=1"`
	UseAugmentation bool   `yaml:"use_augmentation"`
	Concurrency     int    `yaml:"concurrency" validate:"gte=1,lte=256"`
	MatchMode       string `yaml:"match_mode" validate:"oneof=substring token"`
}

type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	DialTimeout   time.Duration `yaml:"dial_timeout" validate:"gt=0"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" validate:"gt=0"`
	URLPolicy     string        `yaml:"url_policy" validate:"oneof=domain_root exact"`
	Extractor     string        `yaml:"extractor" validate:"oneof=visible article"`
	RatePerSecond float64       `yaml:"rate_per_second" validate:"gte=0"`
	CacheTTL      time.Duration `yaml:"cache_ttl" validate:"gt=0"`
	CacheEntries  int           `yaml:"cache_entries" validate:"gte=1"`
}

// StoreConfig.Path empty keeps checkpoints in memory only.
type StoreConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr" validate:"required"`
	MaxUpload    int64         `yaml:"max_upload_bytes" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// ApplyDefaults populates zero values.
func (c *Config) ApplyDefaults() {
	if len(c.Classify.TextColumns) == 0 {
		c.Classify.TextColumns = []int{0, 2}
	}
	if c.Classify.URLColumn == 0 {
		c.Classify.URLColumn = 3
	}
	if c.Classify.Concurrency <= 0 {
		c.Classify.Concurrency = 8
	}
	if c.Classify.MatchMode == "" {
		c.Classify.MatchMode = "substring"
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 5 * time.Second
	}
	if c.Fetch.DialTimeout <= 0 {
		c.Fetch.DialTimeout = 3 * time.Second
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		c.Fetch.MaxBodyBytes = 5 * 1024 * 1024
	}
	if c.Fetch.URLPolicy == "" {
		c.Fetch.URLPolicy = "domain_root"
	}
	if c.Fetch.Extractor == "" {
		c.Fetch.Extractor = "visible"
	}
	if c.Fetch.CacheTTL <= 0 {
		c.Fetch.CacheTTL = time.Hour
	}
	if c.Fetch.CacheEntries <= 0 {
		c.Fetch.CacheEntries = 10000
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUpload <= 0 {
		c.Server.MaxUpload = 32 << 20
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 10 * time.Minute
	}
}

func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// Load reads path (optional; "" or a missing file means defaults), applies
// PORTICUS_* environment overrides and validates.
func Load(path string) (Config, error) {
	return LoadWith(path, FromEnv(EnvPrefix))
}

func LoadWith(path string, env Env) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("decode config: %w", err)
			}
		}
	}
	if err := env.Overlay(&cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for _, col := range c.Classify.TextColumns {
		if col == c.Classify.URLColumn {
			return fmt.Errorf("invalid config: url_column %d is also a text column", col)
		}
	}
	return nil
}
