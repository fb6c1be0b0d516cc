// Package config loads doclink's optional YAML configuration file.
//
// A config file is optional for a linter: when the file is missing, Load
// returns defaults and the CLI flags are the only source of settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doclink/internal/check"
	"git.home.luguber.info/inful/doclink/internal/logfields"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "doclink.yaml"

// File set sources.
const (
	SourceGit  = "git"
	SourceWalk = "walk"
)

// Config is the top-level doclink configuration.
type Config struct {
	// Root is the directory links must stay inside. Relative destinations
	// resolve against it.
	Root string `yaml:"root"`
	// Source selects how the tracked file set is enumerated.
	Source string `yaml:"source"`
	// IndexName is the file a directory link redirects to.
	IndexName string `yaml:"index_name"`
	// Scopes restricts validation to documents under these prefixes.
	Scopes []string `yaml:"scopes"`
	// Excludes drops documents under these prefixes from validation.
	Excludes []string `yaml:"excludes"`
	// IgnorePatterns are extra substrings that exempt a destination.
	IgnorePatterns []string `yaml:"ignore_patterns"`
	// HTMLAnchors also accepts id/name attributes of literal HTML as anchors.
	HTMLAnchors bool `yaml:"html_anchors"`
	// Parallel is the validation worker count; 0 means one per CPU.
	Parallel int `yaml:"parallel"`

	Watch   WatchConfig   `yaml:"watch"`
	History HistoryConfig `yaml:"history"`
	Events  EventsConfig  `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.In(SourceGit, SourceWalk)),
		validation.Field(&c.Parallel, validation.Min(0)),
	); err != nil {
		return err
	}
	if err := c.Watch.Validate(); err != nil {
		return err
	}
	return c.Events.Validate()
}

// CheckConfig returns the validator configuration derived from this file.
func (c *Config) CheckConfig() *check.Config {
	return &check.Config{
		HTMLAnchors:    c.HTMLAnchors,
		IgnorePatterns: c.IgnorePatterns,
		IndexName:      c.IndexName,
	}
}

// WatchConfig holds continuous-mode settings. Durations are YAML strings in
// time.ParseDuration syntax ("500ms", "2m").
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
	// Interval schedules periodic full revalidation; empty or "0s" disables.
	Interval string `yaml:"interval"`
	// HTTPAddr exposes /healthz, /status and /metrics; empty disables.
	HTTPAddr string `yaml:"http_addr"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.By(durationString)),
		validation.Field(&c.Interval, validation.By(durationString)),
	)
}

// DebounceDuration returns the parsed change-batching window.
func (c *WatchConfig) DebounceDuration() time.Duration {
	return durationOr(c.Debounce, 500*time.Millisecond)
}

// IntervalDuration returns the periodic revalidation interval, 0 when disabled.
func (c *WatchConfig) IntervalDuration() time.Duration {
	return durationOr(c.Interval, 0)
}

// HistoryConfig holds run-history recording settings.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// EventsConfig holds NATS problem-event publication settings.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required.When(c.Enabled)),
		validation.Field(&c.Subject, validation.Required.When(c.Enabled)),
	)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Root:      ".",
		Source:    SourceGit,
		IndexName: "README.md",
		Watch: WatchConfig{
			Debounce: "500ms",
		},
		History: HistoryConfig{
			Path: "doclink.db",
		},
		Events: EventsConfig{
			URL:     "nats://localhost:4222",
			Subject: "doclink.links.broken",
		},
	}
}

// Load reads the configuration file at path, expanding ${VAR} references
// from the environment first. A missing file is not an error: defaults
// apply. Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Restore defaults for fields the file blanked out.
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Source == "" {
		cfg.Source = SourceGit
	}
	if cfg.IndexName == "" {
		cfg.IndexName = "README.md"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadEnvFiles loads the first readable env file into the process
// environment. Existing variables are never overridden.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if err := godotenv.Load(name); err == nil {
			slog.Debug("loaded environment file", logfields.File(name))
			return
		}
	}
}

func durationString(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	return nil
}

func durationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
