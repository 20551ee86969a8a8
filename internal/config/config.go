// Package config provides configuration types and defaults for homespun.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/homespun/homespun/internal/log"
	"github.com/homespun/homespun/internal/sessions/domain"
)

// Config holds all configuration options for homespun.
type Config struct {
	StorePath string          `mapstructure:"store_path"`
	Output    OutputConfig    `mapstructure:"output"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Flags     map[string]bool `mapstructure:"flags"`
}

// OutputConfig controls how command results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format"` // "table" (default), "json" or "yaml"
	Color  bool   `mapstructure:"color"`
}

// CacheConfig controls the entity lookup cache.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// WatchConfig controls the live view refresh.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ThemeConfig maps status group labels (e.g. "Plan Ready", "Error") to hex colours.
type ThemeConfig struct {
	Colors map[string]string `mapstructure:"colors" yaml:"colors"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/homespun/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ColorFor returns the configured colour for a status label, or fallback.
// Labels match case-insensitively since viper lowercases map keys.
func (t ThemeConfig) ColorFor(label, fallback string) string {
	if c, ok := t.Colors[label]; ok && c != "" {
		return c
	}
	for l, c := range t.Colors {
		if c != "" && strings.EqualFold(l, label) {
			return c
		}
	}
	return fallback
}

// StatusColors resolves every status label to its configured colour,
// falling back to DefaultStatusColors.
func (t ThemeConfig) StatusColors() map[string]string {
	colors := DefaultStatusColors()
	for label, fallback := range colors {
		colors[label] = t.ColorFor(label, fallback)
	}
	return colors
}

// DefaultStorePath returns ~/.homespun/homespun.db, or a relative path if
// the home directory is unavailable.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".homespun", "homespun.db")
	}
	return filepath.Join(home, ".homespun", "homespun.db")
}

// DefaultTracesFilePath returns ~/.config/homespun/traces/traces.jsonl or
// empty string if the home dir is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "homespun", "traces", "traces.jsonl")
}

// DefaultStatusColors returns the built-in colour for every status label.
func DefaultStatusColors() map[string]string {
	return map[string]string{
		domain.StatusWaitingForPlanExecution.Label():  "#B48EAD",
		domain.StatusWaitingForQuestionAnswer.Label(): "#EBCB8B",
		domain.StatusWaitingForInput.Label():          "#D08770",
		domain.StatusRunning.Label():                  "#54A0FF",
		domain.StatusStarting.Label():                 "#88C0D0",
		domain.StatusRunningHooks.Label():             "#81A1C1",
		domain.StatusStopped.Label():                  "#BBBBBB",
		domain.StatusError.Label():                    "#FF8787",
		domain.UnknownLabel:                           "#777777",
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		StorePath: DefaultStorePath(),
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Theme: ThemeConfig{
			Colors: DefaultStatusColors(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{
			"live-watch":       true,
			"container-uptime": true,
		},
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateOutput(cfg.Output); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateOutput checks output configuration. An empty format means "table".
func ValidateOutput(out OutputConfig) error {
	switch out.Format {
	case "", "table", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("output.format must be \"table\", \"json\", or \"yaml\", got %q", out.Format)
	}
}

// ValidateCache checks cache configuration.
func ValidateCache(cache CacheConfig) error {
	if cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", cache.TTL)
	}
	if cache.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative, got %s", cache.CleanupInterval)
	}
	return nil
}

// ValidateTheme checks that every configured colour is a hex colour.
func ValidateTheme(theme ThemeConfig) error {
	for label, color := range theme.Colors {
		if !hexColor.MatchString(color) {
			return fmt.Errorf("theme.colors.%s: invalid hex color %q", label, color)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}

	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Homespun Configuration

# SQLite store holding sessions, containers and entity metadata
# store_path: ~/.homespun/homespun.db

output:
  format: table   # "table", "json" or "yaml"
  color: true

# Entity metadata lookup cache
cache:
  enabled: true
  ttl: 10m
  cleanup_interval: 30m

# Live view refresh after store changes
watch:
  debounce: 500ms

# Status colours keyed by group label
# theme:
#   colors:
#     "Plan Ready": "#B48EAD"
#     "Error": "#FF8787"

# Distributed tracing
# tracing:
#   enabled: true
#   exporter: file       # "none", "file", "stdout" or "otlp"
#   file_path: ~/.config/homespun/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

flags:
  live-watch: true
  container-uptime: true
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
