package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/codelens/server/internal/langdetect"
	"codeberg.org/codelens/server/internal/suggest"
)

func (a *app) detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Guess the language of a snippet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			lang, err := a.analyzer.Detect(cmd.Context(), code)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("language:"), valueStyle.Render(lang))

			return nil
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Run the language's compiler in syntax-only mode",
		Long: `check writes the snippet to a private temporary directory and runs the
matching toolchain (python3, javac, gcc or g++) over it. Every line the
toolchain prints to stderr is reported. The exit status is 2 when problems
were found.

Without --language the language is detected from the snippet first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			lang := normalizeFlag(a.opts.language)
			if lang == "" {
				if lang, err = a.analyzer.Detect(cmd.Context(), code); err != nil {
					return err
				}

				fmt.Fprintln(out, labelStyle.Render("detected:"), valueStyle.Render(lang))
			}

			diagnostics, err := a.analyzer.Check(cmd.Context(), code, lang)
			if err != nil {
				return err
			}

			if len(diagnostics) == 0 {
				fmt.Fprintln(out, successStyle.Render("✓ no syntax errors"))
				return nil
			}

			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("✗ %d diagnostic line(s)", len(diagnostics))))
			for _, line := range diagnostics {
				fmt.Fprintln(out, diagnosticStyle.Render(line))
			}

			return errDiagnosticsFound
		},
	}

	cmd.Flags().StringVarP(&a.opts.language, "language", "l", "", "python, java, c or cpp (detected when empty)")
	cmd.Flags().DurationVar(&a.opts.checkTimeout, "timeout", defaultCheckTimeout, "limit for a single local toolchain run")

	return cmd
}

func (a *app) scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <original> <corrected>",
		Short: "Character-level similarity between two files, 0 to 100",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := readFile(args[0])
			if err != nil {
				return err
			}

			corrected, err := readFile(args[1])
			if err != nil {
				return err
			}

			score, err := a.analyzer.Score(cmd.Context(), original, corrected)
			if err != nil {
				return err
			}

			style := successStyle
			if score < 50 {
				style = warningStyle
			}

			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("similarity:"), style.Render(fmt.Sprintf("%.2f%%", score)))

			return nil
		},
	}
}

func (a *app) suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [file]",
		Short: "Ask the LLM for a corrected, commented version of a snippet",
		Long: `suggest sends the snippet to the configured LLM provider and prints the
corrected code. Locally the provider comes from --llm-provider / LLM_PROVIDER
(cohere, anthropic, openai or gemini) and the key from --llm-key / LLM_API_KEY.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			lang := normalizeFlag(a.opts.language)
			if lang == "" && strings.TrimSpace(code) != "" {
				lang = langdetect.Detect(code)
			}

			text, err := a.analyzer.Suggest(cmd.Context(), code, lang)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if text == suggest.NoCodeMessage || text == suggest.UnhelpfulMessage {
				fmt.Fprintln(out, warningStyle.Render(text))
				return nil
			}

			if a.opts.raw || !isTerminal(out) {
				fmt.Fprintln(out, text)
				return nil
			}

			rendered, err := renderSuggestion(text, lang)
			if err != nil {
				return err
			}

			fmt.Fprint(out, rendered)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.opts.language, "language", "l", "", "language of the snippet (detected when empty)")
	flags.BoolVar(&a.opts.raw, "raw", false, "print the suggestion without markdown rendering (implied when stdout is not a terminal)")
	flags.StringVar(&a.opts.llm.Provider, "llm-provider", envOr("LLM_PROVIDER", "cohere"), "provider for local suggestions")
	flags.StringVar(&a.opts.llm.APIKey, "llm-key", envOr("LLM_API_KEY", ""), "provider API key for local suggestions")
	flags.StringVar(&a.opts.llm.Model, "llm-model", envOr("LLM_MODEL", ""), "model name (provider default when empty)")
	flags.DurationVar(&a.opts.llm.Timeout, "llm-timeout", 0, "limit for a single provider call (60s when zero)")

	return cmd
}
