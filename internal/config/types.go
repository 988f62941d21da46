package config

import "time"

// holds process-wide settings, built once at startup and passed down explicitly
type Config struct {
	Port        string
	Environment string

	// shared secret every caller must present
	APIKey string

	LLM       LLMConfig
	CORS      CORSConfig
	Checker   CheckerConfig
	RateLimit string // ulule formatted rate, e.g. "120-M"
}

type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowAll       bool
}

// binary overrides for the syntax checker toolchains
type CheckerConfig struct {
	Timeout   time.Duration
	PythonBin string
	JavacBin  string
	CCBin     string
	CXXBin    string
}
