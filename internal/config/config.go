// Package config provides configuration types and defaults for keytrain.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/keytrain/internal/interp"
	"github.com/zjrosen/keytrain/internal/log"
)

// Config holds all configuration options for keytrain.
type Config struct {
	// AutoReload re-applies the config file when it changes on disk.
	AutoReload bool            `mapstructure:"auto_reload"`
	Editor     EditorConfig    `mapstructure:"editor"`
	UI         UIConfig        `mapstructure:"ui"`
	Clipboard  ClipboardConfig `mapstructure:"clipboard"`
	Tracing    TracingConfig   `mapstructure:"tracing"`
	Stats      StatsConfig     `mapstructure:"stats"`
}

// EditorConfig holds the key-interpreter behavior options.
type EditorConfig struct {
	// RepeatFindFallback makes ; and , retry the opposite direction when
	// no match exists in the primary direction.
	RepeatFindFallback bool `mapstructure:"repeat_find_fallback"`

	// AroundWordLeadingFallback makes aw/aW take the preceding whitespace
	// when the word has none trailing.
	AroundWordLeadingFallback bool `mapstructure:"around_word_leading_fallback"`
}

// Policy converts the editor options into an interpreter policy.
func (e EditorConfig) Policy() interp.Policy {
	return interp.Policy{
		RepeatFindFallback:        e.RepeatFindFallback,
		AroundWordLeadingFallback: e.AroundWordLeadingFallback,
	}
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	// ShowKeyEcho displays the in-flight command parse (e.g. "2d") in the
	// status bar.
	ShowKeyEcho bool `mapstructure:"show_key_echo"`
}

// ClipboardConfig selects the yank/paste backend.
type ClipboardConfig struct {
	// Backend is "register" (in-memory, default) or "system" (OS clipboard).
	Backend string `mapstructure:"backend"`
}

// TracingConfig holds tracing configuration for per-key spans.
type TracingConfig struct {
	// Enabled controls whether tracing is active. Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/keytrain/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// SampleRate controls trace sampling (0.0 to 1.0). Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// StatsConfig holds session statistics storage configuration.
type StatsConfig struct {
	// Enabled controls whether session summaries are recorded. Default: true
	Enabled bool `mapstructure:"enabled"`

	// DBPath is the SQLite database file.
	// Default: ~/.config/keytrain/stats.db
	DBPath string `mapstructure:"db_path"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/keytrain/traces/traces.jsonl or empty string if the
// home dir is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keytrain", "traces", "traces.jsonl")
}

// DefaultStatsDBPath returns the default path for the stats database.
// Returns ~/.config/keytrain/stats.db or empty string if the home dir is
// unavailable.
func DefaultStatsDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keytrain", "stats.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		Editor: EditorConfig{
			RepeatFindFallback:        false,
			AroundWordLeadingFallback: true,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			ShowKeyEcho:   true,
		},
		Clipboard: ClipboardConfig{
			Backend: "register",
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			FilePath:   "", // Derived from config dir at runtime
			SampleRate: 1.0,
		},
		Stats: StatsConfig{
			Enabled: true,
			DBPath:  "", // Derived from config dir at runtime
		},
	}
}

// ValidateClipboard checks the clipboard backend selection.
func ValidateClipboard(c ClipboardConfig) error {
	switch c.Backend {
	case "", "register", "system":
		return nil
	default:
		return fmt.Errorf("clipboard.backend must be \"register\" or \"system\", got %q", c.Backend)
	}
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", or \"stdout\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "file" && tracing.FilePath == "" && DefaultTracesFilePath() == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}

	return nil
}

// Validate checks the whole configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateClipboard(cfg.Clipboard); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Keytrain Configuration

# Re-apply this file automatically when it changes on disk
auto_reload: true

# Editor behavior
editor:
  # Make ; and , retry the opposite direction when the primary direction
  # has no match (default: false)
  repeat_find_fallback: false

  # Make aw/aW take the preceding whitespace when the word has none
  # trailing (default: true)
  around_word_leading_fallback: true

# UI settings
ui:
  show_status_bar: true   # Show mode and pending keys at the bottom
  show_key_echo: true     # Echo the in-flight command parse (e.g. "2d")

# Yank/paste backend
clipboard:
  # "register" keeps yanks in memory; "system" uses the OS clipboard
  backend: register

# Session statistics
stats:
  enabled: true
  # db_path: ~/.config/keytrain/stats.db

# Per-key tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout (default: file)
#   file_path: ~/.config/keytrain/traces/traces.jsonl
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
