// Package config handles loading and validation of the optional
// tesscross.yaml file that points the matcher at a coverage service.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Coverage configures the sky-coverage lookup service.
type Coverage struct {
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`       // Go duration, e.g. "30s"
	CacheTTL    string `yaml:"cache_ttl"`     // Go duration, e.g. "1h"
	RateLimitMS int    `yaml:"rate_limit_ms"` // min milliseconds between requests
	MaxRetries  int    `yaml:"max_retries"`
}

// File is the parsed tesscross.yaml.
type File struct {
	Coverage Coverage `yaml:"coverage"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() File {
	return File{Coverage: Coverage{
		BaseURL:     "https://mast.stsci.edu/tesscut/api/v0.1",
		Timeout:     "30s",
		CacheTTL:    "1h",
		RateLimitMS: 100,
		MaxRetries:  3,
	}}
}

// Load reads and validates path, filling unset fields from Defaults.
func Load(path string) (File, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func validate(cfg *File) error {
	c := &cfg.Coverage
	if c.BaseURL == "" {
		return fmt.Errorf("coverage.base_url is required")
	}
	if _, err := c.ParseTimeout(); err != nil {
		return err
	}
	if _, err := c.ParseCacheTTL(); err != nil {
		return err
	}
	if c.RateLimitMS < 0 {
		return fmt.Errorf("coverage.rate_limit_ms must be >= 0")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("coverage.max_retries must be >= 0")
	}
	return nil
}

// ParseTimeout returns the request timeout as a duration.
func (c *Coverage) ParseTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("coverage.timeout must be a positive duration, got %q", c.Timeout)
	}
	return d, nil
}

// ParseCacheTTL returns the lookup-cache TTL as a duration.
func (c *Coverage) ParseCacheTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("coverage.cache_ttl must be a positive duration, got %q", c.CacheTTL)
	}
	return d, nil
}
