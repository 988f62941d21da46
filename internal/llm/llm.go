package llm

import (
	"context"
	"fmt"
)

// creates the generator for cfg.Provider
func NewTextGenerator(ctx context.Context, cfg Config) (TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required for provider %q", cfg.Provider)
	}

	if cfg.Provider == "" {
		cfg.Provider = ProviderCohere
	}

	switch cfg.Provider {
	case ProviderCohere:
		return NewCohereGenerator(cfg), nil
	case ProviderAnthropic:
		return NewAnthropicGenerator(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg), nil
	case ProviderGemini:
		return NewGeminiGenerator(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
