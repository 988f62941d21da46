package suggest

import (
	"context"
	"strings"
	"time"

	"codeberg.org/codelens/server/internal/llm"
	"codeberg.org/codelens/server/internal/logger"
	"codeberg.org/codelens/server/internal/metrics"
)

// New wraps generator; a non-positive timeout falls back to 60s.
func New(generator llm.TextGenerator, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{generator: generator, timeout: timeout}
}

func (c *Client) Model() string {
	return c.generator.Model()
}

func (c *Client) Provider() llm.Provider {
	return c.generator.Provider()
}

// Suggest asks the completion service for a corrected, commented version of code.
//
// Blank input short-circuits without a remote call. Completions that fail the
// garbage filter come back as OutcomeUnhelpful. Transport or provider failures
// are returned as *UpstreamError.
func (c *Client) Suggest(ctx context.Context, code, lang string) (*Result, error) {
	provider := string(c.generator.Provider())

	code = strings.TrimSpace(code)
	if code == "" {
		metrics.ObserveSuggestion(provider, metrics.OutcomeEmptyInput, 0)
		return &Result{Outcome: OutcomeEmptyInput, Text: NoCodeMessage}, nil
	}

	if strings.TrimSpace(lang) == "" {
		lang = DefaultLanguage
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	resp, err := c.generator.GenerateText(ctx, llm.TextGenerationRequest{
		Messages:  []llm.Message{{Role: "user", Content: buildPrompt(code, lang)}},
		MaxTokens: defaultMaxTokens,
	})
	elapsed := time.Since(start)

	if err != nil {
		metrics.ObserveSuggestion(provider, metrics.OutcomeFailed, elapsed)
		return nil, &UpstreamError{Provider: c.generator.Provider(), Err: err}
	}

	text := strings.TrimSpace(resp.Text)
	model := c.generator.Model()

	if IsGarbage(text) {
		logger.FromContext(ctx).Warn("discarding unhelpful suggestion",
			"provider", provider,
			"model", model,
			"length", len(text),
		)

		metrics.ObserveSuggestion(provider, metrics.OutcomeUnhelpful, elapsed)

		return &Result{Outcome: OutcomeUnhelpful, Text: UnhelpfulMessage, Model: model}, nil
	}

	logger.FromContext(ctx).Debug("suggestion generated",
		"provider", provider,
		"model", model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"duration_ms", elapsed.Milliseconds(),
	)

	metrics.ObserveSuggestion(provider, metrics.OutcomeOK, elapsed)

	return &Result{Outcome: OutcomeSuggested, Text: text, Model: model}, nil
}
