package llm

import (
	"context"
	"net/http"
)

// represents different LLM providers
type Provider string

const (
	ProviderCohere    Provider = "cohere"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
)

// produces a completion for a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
	Provider() Provider
}

type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int // 0 falls back to the generator's configured value
}

type TextGenerationResponse struct {
	Text  string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// holds configuration for a single generator
type Config struct {
	Provider    Provider
	APIKey      string
	Model       string  // provider default when empty
	MaxTokens   int     // max tokens for response
	Temperature float32 // 0.0 to 1.0

	// overrides for tests and self-hosted gateways
	BaseURL    string
	HTTPClient *http.Client
}
