package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// shared HTTP client for raw provider calls
var sharedHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// outbound limiter across all providers (50 requests/second with burst capacity of 10)
var providerRateLimiter = rate.NewLimiter(50, 10)

func waitForSlot(ctx context.Context) error {
	if err := providerRateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	return nil
}

// splits a conversation into its history and the final user turn
func splitLastUserMessage(messages []Message) ([]Message, string) {
	if len(messages) == 0 {
		return nil, ""
	}

	last := messages[len(messages)-1]
	if last.Role != "user" {
		return messages, ""
	}

	return messages[:len(messages)-1], last.Content
}
