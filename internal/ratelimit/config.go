package ratelimit

import "strings"

// holds per-client rate limiting configuration
type Config struct {
	// whether limiting is active
	Enabled bool

	// ulule formatted rate, e.g. "120-M" or "10-S"
	Rate string

	// paths that bypass the limiter (health checks, metrics)
	ExemptPaths []string
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		Rate:        "120-M",
		ExemptPaths: []string{"/health", "/ping", "/metrics"},
	}
}

// checks if a path should bypass the limiter
func (c *Config) IsExemptPath(path string) bool {
	for _, exempt := range c.ExemptPaths {
		if path == exempt || strings.HasPrefix(path, exempt+"/") {
			return true
		}
	}

	return false
}
