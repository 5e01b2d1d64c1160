// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/llm"
)

// Defaults
const (
	DefaultPort              = 8080
	DefaultPreviewDebounceMS = 300
	DefaultSessionTTL        = "2h"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
	DefaultMaxUploadBytes    = 5 << 20 // import files
	DefaultMaxImageBytes     = 2 << 20 // profile photos
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Server
	Port       int    `json:"port,omitempty"`        // HTTP listen port
	SessionTTL string `json:"session_ttl,omitempty"` // Idle session lifetime, e.g. "2h"

	// Generation
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Gemini model name

	// Editor
	PreviewDebounceMS int `json:"preview_debounce_ms,omitempty"` // Preview recompute delay (1-1000)

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // trace, debug, info, warn, error
	LogFormat string `json:"log_format,omitempty"` // json or pretty

	// Import and export
	ChromePath        string `json:"chrome_path,omitempty"`         // Chrome/Chromium executable for PDF export
	ExtractPDFLocally bool   `json:"extract_pdf_locally,omitempty"` // Send PDF text instead of the file to the model
	MaxUploadBytes    int64  `json:"max_upload_bytes,omitempty"`    // Import upload limit
	MaxImageBytes     int64  `json:"max_image_bytes,omitempty"`     // Profile photo upload limit
	BrowserFetch      bool   `json:"browser_fetch,omitempty"`       // Render script-heavy profile pages in Chrome on URL import
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:              DefaultPort,
		SessionTTL:        DefaultSessionTTL,
		Model:             llm.DefaultModel,
		PreviewDebounceMS: DefaultPreviewDebounceMS,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
		MaxUploadBytes:    DefaultMaxUploadBytes,
		MaxImageBytes:     DefaultMaxImageBytes,
	}
}

// Load builds the effective configuration: values from the optional config file
// win over the environment, which wins over Defaults. The result is validated.
func Load(path string) (Config, error) {
	file := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	env := FromEnv()
	cfg := file.MergeWithDefaults(env)
	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Zero values are accepted where MergeWithDefaults would fill them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.PreviewDebounceMS < 0 || c.PreviewDebounceMS > 1000 {
		return fmt.Errorf("config error: 'preview_debounce_ms' must be between 1 and 1000, got %d", c.PreviewDebounceMS)
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.MaxImageBytes < 0 {
		return fmt.Errorf("config error: 'max_image_bytes' must be non-negative")
	}

	if c.SessionTTL != "" {
		ttl, err := time.ParseDuration(c.SessionTTL)
		if err != nil {
			return fmt.Errorf("config error: invalid 'session_ttl': %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("config error: 'session_ttl' must be positive")
		}
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level': %w", err)
		}
	}
	switch c.LogFormat {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or pretty, got %q", c.LogFormat)
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SessionTTL == "" {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PreviewDebounceMS == 0 {
		result.PreviewDebounceMS = defaults.PreviewDebounceMS
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.MaxImageBytes == 0 {
		result.MaxImageBytes = defaults.MaxImageBytes
	}

	// Bool fields cannot distinguish unset from false, so either source turns them on
	result.ExtractPDFLocally = result.ExtractPDFLocally || defaults.ExtractPDFLocally
	result.BrowserFetch = result.BrowserFetch || defaults.BrowserFetch

	return result
}

// HasAPIKey reports whether a generation credential is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// PreviewDebounce returns the preview delay as a duration.
func (c *Config) PreviewDebounce() time.Duration {
	return time.Duration(c.PreviewDebounceMS) * time.Millisecond
}

// SessionTTLDuration returns the idle session lifetime, or zero if unset or invalid.
func (c *Config) SessionTTLDuration() time.Duration {
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0
	}
	return ttl
}

// FetchOptions returns the options used to download resumes for URL import.
func (c *Config) FetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Browser = c.BrowserFetch
	opts.ChromePath = c.ChromePath
	if c.MaxUploadBytes > 0 {
		opts.MaxBytes = c.MaxUploadBytes
	}
	return opts
}
