package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/codelens/server/internal/config"
	"codeberg.org/codelens/server/internal/logger"
)

const defaultCheckTimeout = 10 * time.Second

// returned by check when the toolchain reported problems; main maps it to exit status 2
var errDiagnosticsFound = errors.New("syntax errors found")

type options struct {
	server       string
	apiKey       string
	verbose      bool
	raw          bool
	language     string
	checkTimeout time.Duration
	llm          config.LLMConfig
}

type app struct {
	opts     options
	analyzer Analyzer
}

func newRootCmd() *cobra.Command {
	return newApp(nil).rootCmd()
}

// analyzer may be nil; it is then chosen from the flags before each command runs
func newApp(analyzer Analyzer) *app {
	return &app{analyzer: analyzer}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "codelens",
		Short: "Detect, check, score and fix code snippets",
		Long: `codelens runs the code-analysis operations of the codelens server from the terminal.

By default everything runs on this machine: language detection and scoring are
pure functions, syntax checks shell out to the installed compilers and
suggestions call the configured LLM provider directly.

With --server the same operations are sent to a running codelens server,
authenticated with --api-key.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.server, "server", os.Getenv("CODELENS_SERVER"), "codelens server URL (runs locally when empty)")
	flags.StringVar(&a.opts.apiKey, "api-key", os.Getenv("CODELENS_API_KEY"), "shared secret for --server")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		a.detectCmd(),
		a.checkCmd(),
		a.scoreCmd(),
		a.suggestCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if a.opts.verbose {
		level = slog.LevelDebug
	}

	logger.SetDefault(logger.New(cmd.ErrOrStderr(), level, false))

	if a.analyzer != nil {
		return nil
	}

	if a.opts.server != "" {
		if a.opts.apiKey == "" {
			return fmt.Errorf("--api-key (or CODELENS_API_KEY) is required with --server")
		}

		a.analyzer = newRemoteAnalyzer(a.opts.server, a.opts.apiKey)
		return nil
	}

	a.analyzer = newLocalAnalyzer(a.opts.llm, a.opts.checkTimeout)

	return nil
}

// reads the snippet from the named file, or stdin when no file (or "-") is given
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	return readFile(args[0])
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-chosen input file
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}

// lowercases a language name read from flags
func normalizeFlag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
