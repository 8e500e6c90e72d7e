// Package config loads the twindex client configuration from .twindex.yml
// with TWINDEX_* environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config is the top-level twindex configuration, corresponding to
// .twindex.yml.
type Config struct {
	// BaseURL is the simulation service root; requests go to {BaseURL}/simulate.
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	// CatalogURL is where disease_context.json is fetched from. Empty
	// disables fetching.
	CatalogURL string `yaml:"catalog_url" koanf:"catalog_url"`
	// CatalogFile is a local catalog path; takes precedence over CatalogURL.
	CatalogFile string `yaml:"catalog_file" koanf:"catalog_file"`
	// OutputDir is where report exports are written.
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
}

// DefaultConfig returns the configuration used when no file is present.
// The base URL matches the development default of the backend service.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "http://127.0.0.1:8000",
		OutputDir: "reports",
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TWINDEX_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// TWINDEX_BASE_URL -> base_url, etc.
	if err := k.Load(env.Provider("TWINDEX_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TWINDEX_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if c.CatalogURL != "" {
		if _, err := url.ParseRequestURI(c.CatalogURL); err != nil {
			return fmt.Errorf("invalid catalog_url %q: %w", c.CatalogURL, err)
		}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}
