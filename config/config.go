// Package config loads the settings of the dash command.
//
// Settings come from, in order of precedence: command line flags, DASH_*
// environment variables (a .env file in the working directory is loaded first),
// TOML files, and the defaults of NewDefaultConfig.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/quote"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// History store kinds.
const (
	HistoryJSON   = "json"   // history read back from the exported document
	HistorySQLite = "sqlite" // history kept in a database
)

// Config is the whole configuration.
type Config struct {
	Workbook   string   `toml:"workbook"`
	Output     string   `toml:"output"`
	Currency   string   `toml:"currency"`
	Categories []string `toml:"categories"`

	Log     LogConfig        `toml:"log"`
	Quote   QuoteConfig      `toml:"quote"`
	History HistoryConfig    `toml:"history"`
	Layout  dashboard.Layout `toml:"layout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Pretty bool   `toml:"pretty"` // console output instead of json
}

// QuoteConfig configures the price lookups.
type QuoteConfig struct {
	Timeout   string       `toml:"timeout"` // per attempt, duration string
	Delay     string       `toml:"delay"`   // between lookups, duration string
	UserAgent string       `toml:"user_agent"`
	Cache     bool         `toml:"cache"` // daily disk cache of quote pages
	CacheDir  string       `toml:"cache_dir"`
	Sources   []quote.Spec `toml:"sources"`
}

// GetTimeout returns the per attempt timeout, quote.DefaultTimeout when unset or invalid.
func (c QuoteConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return quote.DefaultTimeout
	}
	return d
}

// GetDelay returns the delay between lookups, quote.DefaultDelay when unset or invalid.
func (c QuoteConfig) GetDelay() time.Duration {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return quote.DefaultDelay
	}
	return d
}

// HistoryConfig selects where the snapshot history is kept.
type HistoryConfig struct {
	Kind string `toml:"kind"` // json or sqlite
	Path string `toml:"path"` // database file for sqlite
}

// NewDefaultConfig returns the configuration used without any file.
func NewDefaultConfig() *Config {
	return &Config{
		Workbook:   "portfolio_cuadro_mandos.xlsx",
		Output:     "public/data.json",
		Currency:   "EUR",
		Categories: slices.Clone(dashboard.DefaultCategories),
		Log:        LogConfig{Level: "info", Pretty: true},
		Quote: QuoteConfig{
			Timeout:   quote.DefaultTimeout.String(),
			Delay:     quote.DefaultDelay.String(),
			UserAgent: quote.DefaultUserAgent,
		},
		History: HistoryConfig{Kind: HistoryJSON},
		Layout:  dashboard.DefaultLayout(),
	}
}

// Load reads the configuration files in order, missing files are skipped.
// Environment overrides are applied last.
func Load(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if len(config.Quote.Sources) == 0 {
		config.Quote.Sources = quote.DefaultSpecs()
	}
	if len(config.Categories) == 0 {
		config.Categories = slices.Clone(dashboard.DefaultCategories)
	}

	// a missing .env file is fine
	_ = godotenv.Load()
	applyEnvOverrides(config)
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("DASH_WORKBOOK"); v != "" {
		config.Workbook = v
	}
	if v := os.Getenv("DASH_OUTPUT"); v != "" {
		config.Output = v
	}
	if v := os.Getenv("DASH_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("DASH_HISTORY_DB"); v != "" {
		config.History.Kind = HistorySQLite
		config.History.Path = v
	}
}

// Validate reports every inconsistency of the configuration.
func (c *Config) Validate() error {
	var errs error
	if c.Workbook == "" {
		errs = errors.Join(errs, errors.New("workbook is not set"))
	}
	if c.Output == "" {
		errs = errors.Join(errs, errors.New("output is not set"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = errors.Join(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	for _, q := range []struct{ name, v string }{{"timeout", c.Quote.Timeout}, {"delay", c.Quote.Delay}} {
		name, v := q.name, q.v
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("quote %s: %w", name, err))
		} else if d < 0 {
			errs = errors.Join(errs, fmt.Errorf("quote %s is negative: %v", name, d))
		}
	}
	for _, s := range c.Quote.Sources {
		errs = errors.Join(errs, s.Validate())
	}
	switch c.History.Kind {
	case HistoryJSON:
	case HistorySQLite:
		if c.History.Path == "" {
			errs = errors.Join(errs, errors.New("sqlite history requires a path"))
		}
	default:
		errs = errors.Join(errs, fmt.Errorf("unknown history kind %q", c.History.Kind))
	}
	return errors.Join(errs, c.Layout.Validate())
}
