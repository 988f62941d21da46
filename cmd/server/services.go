package main

import (
	"context"
	"fmt"

	"codeberg.org/codelens/server/internal/config"
	"codeberg.org/codelens/server/internal/llm"
	"codeberg.org/codelens/server/internal/logger"
	"codeberg.org/codelens/server/internal/suggest"
	"codeberg.org/codelens/server/internal/syntaxcheck"
)

// creates and configures all service clients
func InitializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	checker := syntaxcheck.New(
		syntaxcheck.WithTimeout(cfg.Checker.Timeout),
		syntaxcheck.WithBinary("python", cfg.Checker.PythonBin),
		syntaxcheck.WithBinary("java", cfg.Checker.JavacBin),
		syntaxcheck.WithBinary("c", cfg.Checker.CCBin),
		syntaxcheck.WithBinary("cpp", cfg.Checker.CXXBin),
	)

	// missing toolchains are reported per request, not fatal at startup
	checker.DetectAvailable()

	llmConfig, err := llm.ConfigFromApp(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to configure LLM: %w", err)
	}

	generator, err := llm.NewTextGenerator(ctx, llmConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	logger.Info("completion provider configured",
		"provider", generator.Provider(),
		"model", generator.Model(),
		"timeout", cfg.LLM.Timeout,
	)

	return &Services{
		Checker:   checker,
		Suggester: suggest.New(generator, cfg.LLM.Timeout),
	}, nil
}
