package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path pattern; "*" matches one segment, a trailing "/" matches a prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Tiers holds the per-hour limits of the expensive endpoints.
type Tiers struct {
	AIPerHour     int // summary, enhance and skill suggestions
	ImportPerHour int
	PDFPerHour    int
}

// DefaultTiers returns the built-in expensive-endpoint limits.
func DefaultTiers() Tiers {
	return Tiers{AIPerHour: 30, ImportPerHour: 10, PDFPerHour: 20}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !envOr("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	tiers := DefaultTiers()
	tiers.AIPerHour = envOr("RATE_LIMIT_AI_PER_HOUR", tiers.AIPerHour, strconv.Atoi)
	tiers.ImportPerHour = envOr("RATE_LIMIT_IMPORT_PER_HOUR", tiers.ImportPerHour, strconv.Atoi)
	tiers.PDFPerHour = envOr("RATE_LIMIT_PDF_PER_HOUR", tiers.PDFPerHour, strconv.Atoi)

	return &Config{
		Enabled:         true,
		DefaultLimit:    envOr("RATE_LIMIT_DEFAULT_LIMIT", 1200, strconv.Atoi),
		DefaultWindow:   envOr("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envOr("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: EndpointConfigsFor(tiers),
	}
}

// DefaultEndpointConfigs returns the endpoint configurations for DefaultTiers.
func DefaultEndpointConfigs() []EndpointConfig {
	return EndpointConfigsFor(DefaultTiers())
}

// EndpointConfigsFor returns the endpoint-specific configurations. Buckets are
// shared by every path that matches one pattern, so a client cannot dodge the
// AI limits by opening more sessions. A non-positive tier limit leaves that
// endpoint on the default limit.
func EndpointConfigsFor(tiers Tiers) []EndpointConfig {
	var configs []EndpointConfig
	hourly := func(path, method string, limit int) {
		if limit > 0 {
			configs = append(configs, EndpointConfig{
				Path: path, Method: method, Limit: limit, Window: time.Hour, Burst: max(1, limit/6),
			})
		}
	}

	// Tier 1: model calls and browser renders
	hourly("/sessions/*/ai/", "POST", tiers.AIPerHour)
	hourly("/sessions/*/import", "POST", tiers.ImportPerHour)
	hourly("/sessions/*/pdf", "GET", tiers.PDFPerHour)

	// Tier 2: session creation and uploads
	configs = append(configs,
		EndpointConfig{Path: "/sessions", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		EndpointConfig{Path: "/sessions/*/profile-image", Method: "PUT", Limit: 30, Window: time.Minute, Burst: 5},
	)

	// Edits and reads use the default limit; /health is unlimited in the matcher.
	return configs
}

// envOr parses the variable key, falling back to def when unset or malformed.
func envOr[T any](key string, def T, parse func(string) (T, error)) T {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	parsed, err := parse(value)
	if err != nil {
		return def
	}
	return parsed
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
