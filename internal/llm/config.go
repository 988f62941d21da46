package llm

import (
	"fmt"
	"strings"

	"codeberg.org/codelens/server/internal/config"
)

const defaultMaxTokens = 2048

// default model per provider
var defaultModels = map[Provider]string{
	ProviderCohere:    "command-r-plus",
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderGemini:    "gemini-2.0-flash",
}

// maps the application config onto generator config, filling provider defaults
func ConfigFromApp(cfg config.LLMConfig) (Config, error) {
	provider := Provider(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = ProviderCohere
	}

	if _, ok := defaultModels[provider]; !ok {
		return Config{}, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return withDefaults(Config{
		Provider:    provider,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	}), nil
}

// fills model, token budget and client for cfg.Provider; temperature is taken as given (0 is a valid setting)
func withDefaults(cfg Config) Config {
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = sharedHTTPClient
	}

	return cfg
}
