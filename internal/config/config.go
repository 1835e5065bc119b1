// Package config provides configuration types and defaults for inkline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/inkline/internal/log"
)

// Config holds all configuration options for inkline.
type Config struct {
	Theme   ThemeConfig   `mapstructure:"theme"`
	Markup  MarkupConfig  `mapstructure:"markup"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Render  RenderConfig  `mapstructure:"render"`
	Store   StoreConfig   `mapstructure:"store"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "dracula", "nord",
	// "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     code:
	//       fg: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "code.fg": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// MarkupConfig holds parser tuning options.
type MarkupConfig struct {
	// MaxDepth bounds nested formatting scopes. Zero uses the built-in
	// default.
	MaxDepth int `mapstructure:"max_depth"`
}

// CacheConfig holds parse cache options.
type CacheConfig struct {
	// TTL is how long a parsed tree stays cached after its last write.
	TTL time.Duration `mapstructure:"ttl"`

	// CleanupInterval is how often expired entries are swept.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`

	// Disabled bypasses the cache entirely.
	Disabled bool `mapstructure:"disabled"`
}

// RenderConfig holds terminal output options.
type RenderConfig struct {
	// Width wraps rendered output at the given column. Zero disables
	// wrapping.
	Width int `mapstructure:"width"`

	// Hyperlinks selects OSC 8 emission: "auto", "always", "never".
	Hyperlinks string `mapstructure:"hyperlinks"`

	// ShowLinkTargets appends URLs after link text when hyperlinks are
	// not emitted.
	ShowLinkTargets bool `mapstructure:"show_link_targets"`
}

// StoreConfig holds snippet storage configuration.
type StoreConfig struct {
	// DBPath is the SQLite database location.
	// Default: ~/.config/inkline/snippets.db
	DBPath string `mapstructure:"db_path"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/inkline/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/inkline/traces/traces.jsonl or empty string if home
// dir is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inkline", "traces", "traces.jsonl")
}

// DefaultDBPath returns the default snippet database path.
// Returns ~/.config/inkline/snippets.db or empty string if home dir is
// unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inkline", "snippets.db")
}

// ValidateMarkup checks parser configuration for errors.
func ValidateMarkup(m MarkupConfig) error {
	if m.MaxDepth < 0 {
		return fmt.Errorf("markup.max_depth must not be negative, got %d", m.MaxDepth)
	}
	return nil
}

// ValidateRender checks render configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateRender(r RenderConfig) error {
	if r.Width < 0 {
		return fmt.Errorf("render.width must not be negative, got %d", r.Width)
	}
	if r.Hyperlinks != "" {
		switch r.Hyperlinks {
		case "auto", "always", "never":
			// Valid
		default:
			return fmt.Errorf("render.hyperlinks must be \"auto\", \"always\", or \"never\", got %q", r.Hyperlinks)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the whole configuration for errors.
func (c Config) Validate() error {
	if err := ValidateMarkup(c.Markup); err != nil {
		return err
	}
	if err := ValidateRender(c.Render); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme: ThemeConfig{
			// Default theme uses the "default" preset
			Preset: "",
		},
		Markup: MarkupConfig{
			MaxDepth: 0, // parser default
		},
		Cache: CacheConfig{
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
			Disabled:        false,
		},
		Render: RenderConfig{
			Width:           0,
			Hyperlinks:      "auto",
			ShowLinkTargets: false,
		},
		Store: StoreConfig{
			DBPath: DefaultDBPath(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Inkline Configuration

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset (run 'inkline themes' to see available presets):
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default inkline theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   code.fg: "#F9E2AF"
  #   link: "#54A0FF"

# Parser settings
markup:
  # Maximum nesting depth for formatting scopes (0 = built-in default).
  # Pairs beyond the limit render as literal text.
  max_depth: 0

# Parse cache settings
cache:
  ttl: 10m              # How long parsed trees stay cached
  cleanup_interval: 30m # How often expired entries are swept
  disabled: false       # Bypass the cache entirely

# Terminal output settings
render:
  width: 0              # Wrap column (0 = no wrapping)
  hyperlinks: auto      # OSC 8 hyperlinks: auto, always, never
  show_link_targets: false # Append (url) when hyperlinks are off

# Snippet storage
# store:
#   db_path: ~/.config/inkline/snippets.db

# Tracing configuration
# Enables visibility into parse pipeline timings
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/inkline/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
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
