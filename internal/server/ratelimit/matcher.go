package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the first configuration whose method and path pattern
// match the request, or nil.
//
// Patterns are slash-separated; a "*" segment matches any single segment, and a
// pattern ending in "/" matches every path below it. Health checks are never
// limited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: path, Method: method} // Limit 0: unlimited
	}

	// Exact patterns take precedence over prefix patterns
	for i := range configs {
		config := &configs[i]
		if config.Method == method && !strings.HasSuffix(config.Path, "/") && matchSegments(config.Path, path, false) {
			return config
		}
	}
	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && matchSegments(config.Path, path, true) {
			return config
		}
	}
	return nil
}

func matchSegments(pattern, path string, prefix bool) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if prefix {
		if len(got) < len(want) {
			return false
		}
		got = got[:len(want)]
	} else if len(got) != len(want) {
		return false
	}
	for i := range want {
		if want[i] != "*" && want[i] != got[i] {
			return false
		}
	}
	return true
}
