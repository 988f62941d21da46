package suggest

import (
	"fmt"
	"time"

	"codeberg.org/codelens/server/internal/llm"
)

// user-facing sentinels, kept byte-identical for the frontend
const (
	NoCodeMessage    = "⚠️ No code input provided."
	UnhelpfulMessage = "⚠️ No useful suggestion generated. Try again."
)

const (
	DefaultLanguage  = "python"
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 2048
)

type Outcome string

const (
	OutcomeSuggested  Outcome = "suggested"
	OutcomeEmptyInput Outcome = "empty_input"
	OutcomeUnhelpful  Outcome = "unhelpful"
)

// what the completion service produced for one submission
type Result struct {
	Outcome Outcome `json:"outcome"`
	Text    string  `json:"text"`
	Model   string  `json:"model,omitempty"`
}

// the remote call itself failed (network, auth, quota, timeout)
type UpstreamError struct {
	Provider llm.Provider
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// wraps a completion provider with the reviewer prompt and output filter
type Client struct {
	generator llm.TextGenerator
	timeout   time.Duration
}
