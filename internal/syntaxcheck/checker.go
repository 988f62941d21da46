package syntaxcheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"codeberg.org/codelens/server/internal/logger"
	"codeberg.org/codelens/server/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second

	// how long Wait keeps stderr open after the process is killed
	waitDelay = time.Second
)

// Checker materializes a snippet into a private workspace and runs the language's
// compiler or interpreter in syntax-only mode against it.
//
// Safe for concurrent use: every call gets its own workspace directory.
type Checker struct {
	toolchains map[string]Toolchain
	timeout    time.Duration
	tempDir    string

	availMu   sync.RWMutex
	available map[string]bool
}

// configures the Checker
type Option func(*Checker)

// caps each external invocation
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// sets the parent directory for per-check workspaces (defaults to os.TempDir)
func WithTempDir(dir string) Option {
	return func(c *Checker) {
		c.tempDir = dir
	}
}

// registers or replaces the toolchain for tc.Language
func WithToolchain(tc Toolchain) Option {
	return func(c *Checker) {
		c.toolchains[NormalizeLanguage(tc.Language)] = tc
	}
}

// overrides only the binary of an existing toolchain; empty bin is ignored
func WithBinary(language, bin string) Option {
	return func(c *Checker) {
		lang := NormalizeLanguage(language)

		tc, ok := c.toolchains[lang]
		if !ok || bin == "" {
			return
		}

		tc.Command = bin
		c.toolchains[lang] = tc
	}
}

func New(opts ...Option) *Checker {
	c := &Checker{
		toolchains: DefaultToolchains(),
		timeout:    defaultTimeout,
		available:  make(map[string]bool),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// returns the supported language tags in sorted order
func (c *Checker) Languages() []string {
	langs := make([]string, 0, len(c.toolchains))
	for lang := range c.toolchains {
		langs = append(langs, lang)
	}

	sort.Strings(langs)

	return langs
}

// probes PATH for every toolchain binary and logs what is missing
func (c *Checker) DetectAvailable() map[string]bool {
	c.availMu.Lock()
	defer c.availMu.Unlock()

	result := make(map[string]bool, len(c.toolchains))

	for _, lang := range c.Languages() {
		tc := c.toolchains[lang]

		_, err := exec.LookPath(tc.Command)
		ok := err == nil

		c.available[lang] = ok
		result[lang] = ok

		if ok {
			logger.Info("syntax checker available", "language", lang, "command", tc.Command)
		} else {
			logger.Warn("syntax checker not installed", "language", lang, "command", tc.Command)
		}
	}

	return result
}

// reports the last probe result for language
func (c *Checker) IsAvailable(language string) bool {
	c.availMu.RLock()
	defer c.availMu.RUnlock()

	return c.available[NormalizeLanguage(language)]
}

// Check runs the syntax checker for language over code.
//
// Unknown languages yield exactly [UnsupportedLanguage] without touching the filesystem.
// Anything the tool writes to stderr is returned line by line, whatever its exit status.
// A missing binary, a timeout and a silent non-zero exit are reported as *CheckError
// wrapping ErrCheckerUnavailable, ErrCheckTimeout and ErrCheckFailed respectively.
func (c *Checker) Check(ctx context.Context, code, language string) (*Result, error) {
	start := time.Now()
	lang := NormalizeLanguage(language)

	tc, ok := c.toolchains[lang]
	if !ok {
		metrics.ObserveSyntaxCheck(lang, metrics.OutcomeUnsupported, 0)

		return &Result{
			Language:    lang,
			Diagnostics: []string{UnsupportedLanguage},
			Unsupported: true,
		}, nil
	}

	bin, err := exec.LookPath(tc.Command)
	if err != nil {
		metrics.ObserveSyntaxCheck(lang, metrics.OutcomeUnavailable, 0)
		return nil, &CheckError{Language: lang, Tool: tc.Command, Kind: ErrCheckerUnavailable, Cause: err}
	}

	workspace, err := os.MkdirTemp(c.tempDir, "codelens-check-*")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	// removes the source file and any tool by-products (__pycache__, .class files)
	defer func() {
		if rmErr := os.RemoveAll(workspace); rmErr != nil {
			logger.ErrorErr(rmErr, "failed to remove syntax check workspace", "workspace", workspace)
		}
	}()

	source, err := writeSource(workspace, tc, code)
	if err != nil {
		return nil, err
	}

	stderr, err := c.run(ctx, bin, tc.Args(workspace, source), workspace)
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			metrics.ObserveSyntaxCheck(lang, metrics.OutcomeTimeout, elapsed)
			return nil, &CheckError{Language: lang, Tool: tc.Command, Kind: ErrCheckTimeout, Cause: err}
		case errors.Is(err, context.Canceled):
			return nil, fmt.Errorf("syntax check canceled: %w", err)
		case strings.TrimSpace(stderr) == "":
			metrics.ObserveSyntaxCheck(lang, metrics.OutcomeFailed, elapsed)
			return nil, &CheckError{Language: lang, Tool: tc.Command, Kind: ErrCheckFailed, Cause: err}
		}

		// a non-zero exit that explains itself on stderr is a diagnostics report
	}

	diagnostics := splitDiagnostics(stderr)

	outcome := metrics.OutcomeOK
	if len(diagnostics) > 0 {
		outcome = metrics.OutcomeDiagnostics
	}

	metrics.ObserveSyntaxCheck(lang, outcome, elapsed)

	return &Result{
		Language:    lang,
		Diagnostics: diagnostics,
		Tool:        tc.Command,
		Duration:    elapsed,
	}, nil
}

// writes code into a uniquely named file inside workspace
func writeSource(workspace string, tc Toolchain, code string) (string, error) {
	if tc.FileName != nil {
		if name := tc.FileName(code); name != "" {
			path := filepath.Join(workspace, name)
			if err := os.WriteFile(path, []byte(code), 0o600); err != nil {
				return "", fmt.Errorf("writing source file: %w", err)
			}

			return path, nil
		}
	}

	f, err := os.CreateTemp(workspace, "snippet-*"+tc.Extension)
	if err != nil {
		return "", fmt.Errorf("creating source file: %w", err)
	}

	if _, err := f.WriteString(code); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return "", fmt.Errorf("writing source file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing source file: %w", err)
	}

	return f.Name(), nil
}

// runs bin with a timeout and returns whatever it wrote to stderr
func (c *Checker) run(ctx context.Context, bin string, args []string, dir string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, bin, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	if cmdCtx.Err() == context.DeadlineExceeded {
		return stderr.String(), fmt.Errorf("after %s: %w", c.timeout, context.DeadlineExceeded)
	}

	if ctx.Err() != nil {
		return stderr.String(), ctx.Err()
	}

	return stderr.String(), err
}

// trims the stream and splits it into lines; an empty stream means no diagnostics
func splitDiagnostics(stderr string) []string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return []string{}
	}

	lines := strings.Split(trimmed, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	return lines
}
