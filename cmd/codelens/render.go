package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
)

const wrapWidth = 80

// renders the suggestion as a fenced code block so glamour highlights it
func renderSuggestion(text, lang string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	md := text
	if !strings.HasPrefix(strings.TrimSpace(text), "```") {
		md = "```" + lang + "\n" + strings.TrimRight(text, "\n") + "\n```\n"
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render suggestion: %w", err)
	}

	return rendered, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

// styled output only goes to terminals; pipes and files get plain text
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
