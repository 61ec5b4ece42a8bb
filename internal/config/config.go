// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"krogcal/internal/scraper"
)

// Config is the application configuration. Flags override file values.
type Config struct {
	// URL is the calendar page to scrape.
	URL string `yaml:"url"`

	// MonthsAhead is the inclusion horizon: events up to the end of the
	// month this many months ahead are kept.
	MonthsAhead int `yaml:"months_ahead"`

	// Blacklist lists substrings; events whose title contains any of them
	// (case-insensitive) are dropped.
	Blacklist []string `yaml:"blacklist"`

	// DataDir is where scrape snapshots are stored for --diff.
	DataDir string `yaml:"data_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		URL:         scraper.CalendarURL,
		MonthsAhead: 2,
		Blacklist:   []string{},
		DataDir:     "~/.local/share/krogcal",
	}
}

// Normalize fills in missing or invalid values with defaults so a partially
// filled config file still behaves.
func (c *Config) Normalize() {
	if c.URL == "" {
		c.URL = scraper.CalendarURL
	}
	if c.MonthsAhead < 0 {
		c.MonthsAhead = 0
	}
	if c.Blacklist == nil {
		c.Blacklist = []string{}
	}
	if c.DataDir == "" {
		c.DataDir = "~/.local/share/krogcal"
	}
}

// Load reads configuration from the given YAML path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()

	return &cfg, nil
}
