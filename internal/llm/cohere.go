package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const cohereChatURL = "https://api.cohere.ai/v1/chat"

type cohereChatRequest struct {
	Message     string              `json:"message"`
	Model       string              `json:"model"`
	Temperature float32             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Preamble    string              `json:"preamble,omitempty"`
	ChatHistory []cohereChatMessage `json:"chat_history,omitempty"`
}

type cohereChatMessage struct {
	Role    string `json:"role"` // USER or CHATBOT
	Message string `json:"message"`
}

type cohereChatResponse struct {
	Text         string `json:"text"`
	GenerationID string `json:"generation_id"`
	FinishReason string `json:"finish_reason"`
	Meta         struct {
		BilledUnits struct {
			InputTokens  float64 `json:"input_tokens"`
			OutputTokens float64 `json:"output_tokens"`
		} `json:"billed_units"`
	} `json:"meta"`
}

type CohereGenerator struct {
	config Config
	url    string
}

func NewCohereGenerator(config Config) *CohereGenerator {
	config.Provider = ProviderCohere
	config = withDefaults(config)

	url := cohereChatURL
	if config.BaseURL != "" {
		url = strings.TrimRight(config.BaseURL, "/") + "/v1/chat"
	}

	return &CohereGenerator{config: config, url: url}
}

func (g *CohereGenerator) Model() string {
	return g.config.Model
}

func (g *CohereGenerator) Provider() Provider {
	return ProviderCohere
}

func (g *CohereGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	history, message := splitLastUserMessage(req.Messages)
	if message == "" {
		return nil, fmt.Errorf("conversation must end with a user message")
	}

	chatHistory := make([]cohereChatMessage, 0, len(history))
	for _, msg := range history {
		role := "USER"
		if msg.Role == "assistant" {
			role = "CHATBOT"
		}

		chatHistory = append(chatHistory, cohereChatMessage{Role: role, Message: msg.Content})
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	jsonData, err := json.Marshal(cohereChatRequest{
		Message:     message,
		Model:       g.config.Model,
		Temperature: g.config.Temperature,
		MaxTokens:   maxTokens,
		Preamble:    req.SystemPrompt,
		ChatHistory: chatHistory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	if err := waitForSlot(ctx); err != nil {
		return nil, err
	}

	resp, err := g.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp cohereChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &TextGenerationResponse{
		Text: strings.TrimSpace(apiResp.Text),
		Usage: Usage{
			InputTokens:  int(apiResp.Meta.BilledUnits.InputTokens),
			OutputTokens: int(apiResp.Meta.BilledUnits.OutputTokens),
		},
	}, nil
}
