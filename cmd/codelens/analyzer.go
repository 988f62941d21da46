package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/codelens/server/internal/config"
	"codeberg.org/codelens/server/internal/langdetect"
	"codeberg.org/codelens/server/internal/llm"
	"codeberg.org/codelens/server/internal/similarity"
	"codeberg.org/codelens/server/internal/suggest"
	"codeberg.org/codelens/server/internal/syntaxcheck"
)

const remoteRequestTimeout = 90 * time.Second

// the four analysis operations, run in-process or against a running server
type Analyzer interface {
	Detect(ctx context.Context, code string) (string, error)
	Check(ctx context.Context, code, language string) ([]string, error)
	Score(ctx context.Context, original, corrected string) (float64, error)
	Suggest(ctx context.Context, code, language string) (string, error)
}

// runs everything on this machine; suggestions need provider credentials
type localAnalyzer struct {
	checker   *syntaxcheck.Checker
	llmConfig config.LLMConfig
}

func newLocalAnalyzer(llmConfig config.LLMConfig, checkTimeout time.Duration) *localAnalyzer {
	return &localAnalyzer{
		checker:   syntaxcheck.New(syntaxcheck.WithTimeout(checkTimeout)),
		llmConfig: llmConfig,
	}
}

func (a *localAnalyzer) Detect(_ context.Context, code string) (string, error) {
	return langdetect.Detect(code), nil
}

func (a *localAnalyzer) Check(ctx context.Context, code, language string) ([]string, error) {
	result, err := a.checker.Check(ctx, code, language)
	if err != nil {
		return nil, err
	}

	return result.Diagnostics, nil
}

func (a *localAnalyzer) Score(_ context.Context, original, corrected string) (float64, error) {
	return similarity.Score(original, corrected), nil
}

func (a *localAnalyzer) Suggest(ctx context.Context, code, language string) (string, error) {
	if a.llmConfig.APIKey == "" {
		return "", fmt.Errorf("no provider key: set --llm-key or LLM_API_KEY")
	}

	cfg, err := llm.ConfigFromApp(a.llmConfig)
	if err != nil {
		return "", err
	}

	generator, err := llm.NewTextGenerator(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create %s generator: %w", cfg.Provider, err)
	}

	result, err := suggest.New(generator, a.llmConfig.Timeout).Suggest(ctx, code, language)
	if err != nil {
		return "", err
	}

	return result.Text, nil
}

// manages HTTP requests to a codelens server
type remoteAnalyzer struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func newRemoteAnalyzer(endpoint, apiKey string) *remoteAnalyzer {
	return &remoteAnalyzer{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: remoteRequestTimeout,
		},
	}
}

func (a *remoteAnalyzer) Detect(ctx context.Context, code string) (string, error) {
	var resp struct {
		Language string `json:"language"`
	}

	err := a.post(ctx, "/detect_language", map[string]string{"code": code}, &resp)

	return resp.Language, err
}

func (a *remoteAnalyzer) Check(ctx context.Context, code, language string) ([]string, error) {
	var resp struct {
		Errors []string `json:"errors"`
	}

	err := a.post(ctx, "/syntax_check", map[string]string{"code": code, "language": language}, &resp)

	return resp.Errors, err
}

func (a *remoteAnalyzer) Score(ctx context.Context, original, corrected string) (float64, error) {
	var resp struct {
		Similarity float64 `json:"similarity"`
	}

	err := a.post(ctx, "/score", map[string]string{"original": original, "corrected": corrected}, &resp)

	return resp.Similarity, err
}

func (a *remoteAnalyzer) Suggest(ctx context.Context, code, language string) (string, error) {
	var resp struct {
		Suggestion string `json:"suggestion"`
	}

	err := a.post(ctx, "/ml_suggest", map[string]string{"code": code, "language": language}, &resp)

	return resp.Suggestion, err
}

func (a *remoteAnalyzer) post(ctx context.Context, path string, payload map[string]string, out any) error {
	payload["api_key"] = a.apiKey

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}

		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return fmt.Errorf("%s (%d): %s", apiErr.Error, resp.StatusCode, apiErr.Message)
			}

			return fmt.Errorf("%s (%d)", apiErr.Error, resp.StatusCode)
		}

		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
