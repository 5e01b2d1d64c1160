package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/llm"
)

// clearEnv blanks every variable FromEnv reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "API_KEY", "PORT", "SESSION_TTL", "GEMINI_MODEL",
		"PREVIEW_DEBOUNCE_MS", "LOG_LEVEL", "LOG_FORMAT", "CHROME_PATH",
		"EXTRACT_PDF_LOCALLY", "MAX_UPLOAD_BYTES", "MAX_IMAGE_BYTES", "FETCH_WITH_BROWSER",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"api_key": "file-key",
		"preview_debounce_ms": 150,
		"log_format": "pretty",
		"extract_pdf_locally": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 150, cfg.PreviewDebounceMS)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.True(t, cfg.ExtractPDFLocally)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"zero value", Config{}, ""},
		{"port too large", Config{Port: 70000}, "port"},
		{"debounce too long", Config{PreviewDebounceMS: 1500}, "preview_debounce_ms"},
		{"negative debounce", Config{PreviewDebounceMS: -1}, "preview_debounce_ms"},
		{"bad ttl", Config{SessionTTL: "forever"}, "session_ttl"},
		{"negative ttl", Config{SessionTTL: "-1m"}, "session_ttl"},
		{"bad level", Config{LogLevel: "loud"}, "log_level"},
		{"bad format", Config{LogFormat: "xml"}, "log_format"},
		{"negative upload", Config{MaxUploadBytes: -1}, "max_upload_bytes"},
		{"missing chrome", Config{ChromePath: "/nonexistent/chrome"}, "chrome executable not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		APIKey: "custom-key",
		Port:   9000,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "custom-key", merged.APIKey)
	assert.Equal(t, 9000, merged.Port)

	// Default values should fill in empty fields
	assert.Equal(t, llm.DefaultModel, merged.Model)
	assert.Equal(t, DefaultPreviewDebounceMS, merged.PreviewDebounceMS)
	assert.Equal(t, int64(DefaultMaxUploadBytes), merged.MaxUploadBytes)
	assert.Equal(t, int64(DefaultMaxImageBytes), merged.MaxImageBytes)
	assert.Equal(t, "json", merged.LogFormat)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{APIKey: "k", ExtractPDFLocally: true}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "k", merged.APIKey)
	assert.True(t, merged.ExtractPDFLocally)
	assert.Zero(t, merged.Port)
}

func TestFromEnv_APIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy")
	assert.Equal(t, "legacy", FromEnv().APIKey)

	t.Setenv("GEMINI_API_KEY", "preferred")
	assert.Equal(t, "preferred", FromEnv().APIKey)
}

func TestFromEnv_ParsesValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXTRACT_PDF_LOCALLY", "true")
	t.Setenv("FETCH_WITH_BROWSER", "1")
	t.Setenv("PREVIEW_DEBOUNCE_MS", "not-a-number")

	cfg := FromEnv()
	assert.True(t, cfg.BrowserFetch)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.ExtractPDFLocally)
	assert.Zero(t, cfg.PreviewDebounceMS)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, `{"port": 9090, "session_ttl": "30m"}`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port, "file wins over env")
	assert.Equal(t, "env-key", cfg.APIKey, "env fills what the file leaves out")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTLDuration())
	assert.Equal(t, 300*time.Millisecond, cfg.PreviewDebounce())
	assert.True(t, cfg.HasAPIKey())
}

func TestLoad_NoFileNoKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.HasAPIKey())
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTLDuration())
}

func TestLoad_InvalidEnvFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load("")
	assert.Error(t, err)
}

func TestFetchOptions(t *testing.T) {
	cfg := Config{BrowserFetch: true, ChromePath: "/usr/bin/chromium", MaxUploadBytes: 1024}

	opts := cfg.FetchOptions()
	assert.True(t, opts.Browser)
	assert.Equal(t, "/usr/bin/chromium", opts.ChromePath)
	assert.Equal(t, int64(1024), opts.MaxBytes)
	assert.False(t, opts.AllowPrivateNetworks)

	defaults := (&Config{}).FetchOptions()
	assert.Equal(t, int64(fetch.DefaultMaxBytes), defaults.MaxBytes)
	assert.False(t, defaults.Browser)
}
