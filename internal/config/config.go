// Package config handles conet configuration: a YAML file with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	OpenAlex OpenAlexConfig `yaml:"openalex"`
	Cache    CacheConfig    `yaml:"cache"`
	Graph    GraphConfig    `yaml:"graph"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig governs the HTTP server.
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// OpenAlexConfig describes connectivity to the OpenAlex API.
type OpenAlexConfig struct {
	BaseURL        string `yaml:"base_url"`
	Mailto         string `yaml:"mailto"`
	WorksPerAuthor int    `yaml:"works_per_author"`
}

// CacheConfig controls the author details cache.
type CacheConfig struct {
	Path string   `yaml:"path"`
	TTL  Duration `yaml:"ttl"`
}

// GraphConfig bounds graph construction.
type GraphConfig struct {
	DefaultDepth      int `yaml:"default_depth"`
	DefaultMaxNodes   int `yaml:"default_max_nodes"`
	PathMaxExpansions int `yaml:"path_max_expansions"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			AllowedOrigins:  []string{"*"},
		},
		OpenAlex: OpenAlexConfig{
			WorksPerAuthor: 30,
		},
		Cache: CacheConfig{
			TTL: Duration(7 * 24 * time.Hour),
		},
		Graph: GraphConfig{
			DefaultDepth:      1,
			DefaultMaxNodes:   300,
			PathMaxExpansions: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration, layering the YAML file (if path is non-empty or
// the default file exists) over the defaults and environment variables over
// both.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if p, err := DefaultConfigPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Cache.Path == "" {
		p, err := defaultCachePath()
		if err != nil {
			return Config{}, err
		}
		cfg.Cache.Path = p
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("CONET_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("CONET_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CONET_PORT value %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("OPENALEX_MAILTO"); v != "" {
		cfg.OpenAlex.Mailto = v
	}
	if v := os.Getenv("OPENALEX_BASE_URL"); v != "" {
		cfg.OpenAlex.BaseURL = v
	}
	if v := os.Getenv("CONET_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

// DefaultConfigPath returns ~/.config/conet/config.yml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "conet", "config.yml"), nil
}

func defaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache directory: %w", err)
	}
	return filepath.Join(dir, "conet", "authors.db"), nil
}
