package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort         = "5000"
	defaultProvider     = "cohere"
	defaultTemperature  = float32(0.3)
	defaultLLMTimeout   = 60 * time.Second
	defaultCheckTimeout = 10 * time.Second
	defaultRateLimit    = "120-M"
	defaultEnvironment  = "development"
)

// origins the hosted frontend and API tooling are served from
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://web.postman.co",
	"https://static-code-analyzer.netlify.app",
}

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromLookup(os.LookupEnv)
}

// builds a Config from an arbitrary lookup function (os.LookupEnv in production)
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	// API_KEY wins; COHERE_API_KEY is the historical name of the same secret
	apiKey := get("API_KEY")
	if apiKey == "" {
		apiKey = get("COHERE_API_KEY")
	}

	if apiKey == "" {
		return nil, fmt.Errorf("API_KEY (or COHERE_API_KEY) environment variable is required")
	}

	port := get("PORT")
	if port == "" {
		port = defaultPort
	}

	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
	}

	environment := get("ENVIRONMENT")
	if environment == "" {
		environment = defaultEnvironment
	}

	llmCfg, err := loadLLM(get, apiKey)
	if err != nil {
		return nil, err
	}

	checkTimeout, err := durationOr(get("SYNTAX_CHECK_TIMEOUT"), defaultCheckTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNTAX_CHECK_TIMEOUT: %w", err)
	}

	origins := defaultAllowedOrigins
	if raw := get("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = splitList(raw)
	}

	allowAll, _ := strconv.ParseBool(get("CORS_ALLOW_ALL")) //nolint:errcheck // unset or garbage means false

	rateLimit := get("RATE_LIMIT")
	if rateLimit == "" {
		rateLimit = defaultRateLimit
	}

	return &Config{
		Port:        port,
		Environment: environment,
		APIKey:      apiKey,
		LLM:         llmCfg,
		CORS: CORSConfig{
			AllowedOrigins: origins,
			AllowAll:       allowAll,
		},
		Checker: CheckerConfig{
			Timeout:   checkTimeout,
			PythonBin: get("PYTHON_BIN"),
			JavacBin:  get("JAVAC_BIN"),
			CCBin:     get("CC_BIN"),
			CXXBin:    get("CXX_BIN"),
		},
		RateLimit: rateLimit,
	}, nil
}

func loadLLM(get func(string) string, sharedSecret string) (LLMConfig, error) {
	provider := strings.ToLower(get("LLM_PROVIDER"))
	if provider == "" {
		provider = defaultProvider
	}

	// the shared secret doubles as the provider token unless a dedicated one is set
	key := get("LLM_API_KEY")
	if key == "" {
		key = sharedSecret
	}

	temperature := defaultTemperature
	if raw := get("LLM_TEMPERATURE"); raw != "" {
		val, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return LLMConfig{}, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
		}

		temperature = float32(val)
	}

	timeout, err := durationOr(get("LLM_TIMEOUT"), defaultLLMTimeout)
	if err != nil {
		return LLMConfig{}, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}

	return LLMConfig{
		Provider:    provider,
		APIKey:      key,
		Model:       get("LLM_MODEL"),
		Temperature: temperature,
		Timeout:     timeout,
	}, nil
}

func durationOr(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}

	return time.ParseDuration(raw)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
