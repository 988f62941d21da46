package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"codeberg.org/codelens/server/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements llm.TextGenerator for testing
type mockGenerator struct {
	generateTextFunc func(ctx context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error)
	calls            int
	lastRequest      llm.TextGenerationRequest
}

func (m *mockGenerator) GenerateText(ctx context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	m.calls++
	m.lastRequest = req

	if m.generateTextFunc != nil {
		return m.generateTextFunc(ctx, req)
	}

	return &llm.TextGenerationResponse{Text: "print('hello')  # closed the parenthesis"}, nil
}

func (m *mockGenerator) Model() string {
	return "mock-model"
}

func (m *mockGenerator) Provider() llm.Provider {
	return llm.ProviderCohere
}

func respondWith(text string) func(context.Context, llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	return func(context.Context, llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
		return &llm.TextGenerationResponse{Text: text}, nil
	}
}

func TestSuggest_EmptyInputSkipsRemoteCall(t *testing.T) {
	gen := &mockGenerator{}
	client := New(gen, time.Second)

	for _, code := range []string{"", "   ", "\n\t\n"} {
		result, err := client.Suggest(context.Background(), code, "python")
		require.NoError(t, err)

		assert.Equal(t, OutcomeEmptyInput, result.Outcome)
		assert.Equal(t, "⚠️ No code input provided.", result.Text)
	}

	assert.Zero(t, gen.calls)
}

func TestSuggest_ReturnsTrimmedCompletion(t *testing.T) {
	gen := &mockGenerator{generateTextFunc: respondWith("\n  int main() { return 0; } // added return\n")}
	client := New(gen, time.Second)

	result, err := client.Suggest(context.Background(), "int main() {", "c")
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuggested, result.Outcome)
	assert.Equal(t, "int main() { return 0; } // added return", result.Text)
	assert.Equal(t, "mock-model", result.Model)
	assert.Equal(t, 1, gen.calls)
}

func TestSuggest_PromptCarriesLanguageAndCode(t *testing.T) {
	gen := &mockGenerator{}
	client := New(gen, time.Second)

	_, err := client.Suggest(context.Background(), "  print('x'  ", "python")
	require.NoError(t, err)

	require.Len(t, gen.lastRequest.Messages, 1)
	prompt := gen.lastRequest.Messages[0].Content

	assert.Equal(t, "user", gen.lastRequest.Messages[0].Role)
	assert.Contains(t, prompt, "Analyze the following Python code:")
	assert.Contains(t, prompt, "### Original Python Code:\nprint('x'\n")
	assert.True(t, strings.HasSuffix(prompt, "### Corrected and Commented Code:\n"))
	assert.NotContains(t, prompt, "{language}")
}

func TestSuggest_DefaultsLanguageToPython(t *testing.T) {
	gen := &mockGenerator{}
	client := New(gen, time.Second)

	_, err := client.Suggest(context.Background(), "x = 1", "")
	require.NoError(t, err)

	assert.Contains(t, gen.lastRequest.Messages[0].Content, "Python")
}

func TestSuggest_GarbageBecomesUnhelpful(t *testing.T) {
	for _, text := range []string{"{}", "(x, y)(x, y)", "   ", "aaaa", "[ ] ( ) { } ; ;"} {
		gen := &mockGenerator{generateTextFunc: respondWith(text)}
		client := New(gen, time.Second)

		result, err := client.Suggest(context.Background(), "x = ", "python")
		require.NoError(t, err, text)

		assert.Equal(t, OutcomeUnhelpful, result.Outcome, text)
		assert.Equal(t, "⚠️ No useful suggestion generated. Try again.", result.Text)
	}
}

func TestSuggest_UpstreamFailure(t *testing.T) {
	cause := errors.New("API request failed with status 401: invalid api token")
	gen := &mockGenerator{
		generateTextFunc: func(context.Context, llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			return nil, cause
		},
	}
	client := New(gen, time.Second)

	result, err := client.Suggest(context.Background(), "x = ", "python")

	assert.Nil(t, result)
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, llm.ProviderCohere, upstream.Provider)
	assert.ErrorIs(t, err, cause)
}

func TestSuggest_TimeoutReachesGenerator(t *testing.T) {
	gen := &mockGenerator{
		generateTextFunc: func(ctx context.Context, _ llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	client := New(gen, 20*time.Millisecond)

	_, err := client.Suggest(context.Background(), "x = ", "python")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsGarbage(t *testing.T) {
	garbage := []string{
		"",
		"   \n\t",
		"{}[]()<>",
		`"'\`,
		"(x, y)",
		"(x, y), (x, y), (x, y)",
		"(x, y))",
		"(x, y)))",
		"{ } [ ] ( ) ; : { }",
		"ab ab ab",
	}
	for _, text := range garbage {
		assert.True(t, IsGarbage(text), "%q", text)
	}

	useful := []string{
		"print('hello')",
		"public class Main { }",
		"#include <stdio.h>\nint main(void) { return 0; }",
	}
	for _, text := range useful {
		assert.False(t, IsGarbage(text), "%q", text)
	}
}

func TestBuildPrompt_CapitalisesLanguage(t *testing.T) {
	assert.Contains(t, buildPrompt("x", "java"), "following Java code")
	assert.Contains(t, buildPrompt("x", "JAVA"), "following Java code")
	assert.Contains(t, buildPrompt("x", "cpp"), "following Cpp code")
}
