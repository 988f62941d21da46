package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"API_KEY": "secret"}))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "cohere", cfg.LLM.Provider)
	assert.Equal(t, "secret", cfg.LLM.APIKey, "shared secret doubles as provider token")
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Checker.Timeout)
	assert.Equal(t, defaultAllowedOrigins, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowAll)
	assert.Equal(t, "120-M", cfg.RateLimit)
	assert.False(t, cfg.IsProduction())
}

func TestFromLookup_MissingSecret(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestFromLookup_CohereKeyFallback(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"COHERE_API_KEY": "legacy"}))
	require.NoError(t, err)

	assert.Equal(t, "legacy", cfg.APIKey)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"API_KEY":              "secret",
		"PORT":                 "8081",
		"ENVIRONMENT":          "production",
		"LLM_PROVIDER":         "OpenAI",
		"LLM_API_KEY":          "sk-test",
		"LLM_MODEL":            "gpt-4o-mini",
		"LLM_TEMPERATURE":      "0.7",
		"LLM_TIMEOUT":          "5s",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example ,",
		"CORS_ALLOW_ALL":       "true",
		"SYNTAX_CHECK_TIMEOUT": "2s",
		"PYTHON_BIN":           "/usr/bin/python3.12",
		"RATE_LIMIT":           "10-S",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowAll)
	assert.Equal(t, 2*time.Second, cfg.Checker.Timeout)
	assert.Equal(t, "/usr/bin/python3.12", cfg.Checker.PythonBin)
	assert.Equal(t, "10-S", cfg.RateLimit)
}

func TestFromLookup_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"port":          {"API_KEY": "k", "PORT": "http"},
		"temperature":   {"API_KEY": "k", "LLM_TEMPERATURE": "warm"},
		"llm timeout":   {"API_KEY": "k", "LLM_TIMEOUT": "forever"},
		"check timeout": {"API_KEY": "k", "SYNTAX_CHECK_TIMEOUT": "10"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(env))
			assert.Error(t, err)
		})
	}
}
