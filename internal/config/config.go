// Package config loads dashboard configuration. Precedence, highest
// first: environment variables, the YAML config file, built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	Port int `yaml:"port"`

	GitHub struct {
		BaseURL string   `yaml:"baseURL"`
		Token   string   `yaml:"token"`
		Repos   []string `yaml:"repos"`
	} `yaml:"github"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Cache struct {
		ParseTTLMinutes int `yaml:"parseTTLMinutes"`
		GraphTTLMinutes int `yaml:"graphTTLMinutes"`
	} `yaml:"cache"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{Port: 8080}
	cfg.GitHub.BaseURL = "https://api.github.com"
	cfg.Database.Path = "issuedash.db"
	cfg.Cache.ParseTTLMinutes = 30
	cfg.Cache.GraphTTLMinutes = 15
	return cfg
}

// Load reads configuration from path (optional; empty path or a missing
// file falls back to defaults) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Cache.ParseTTLMinutes <= 0 || cfg.Cache.GraphTTLMinutes <= 0 {
		return nil, fmt.Errorf("cache TTLs must be positive")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_URL"); v != "" {
		cfg.GitHub.BaseURL = v
	}
	if v := os.Getenv("ISSUEDASH_DB"); v != "" {
		cfg.Database.Path = v
	}
}

// ParseTTL returns the parse-result cache TTL.
func (c *Config) ParseTTL() time.Duration {
	return time.Duration(c.Cache.ParseTTLMinutes) * time.Minute
}

// GraphTTL returns the graph-result cache TTL.
func (c *Config) GraphTTL() time.Duration {
	return time.Duration(c.Cache.GraphTTLMinutes) * time.Minute
}
