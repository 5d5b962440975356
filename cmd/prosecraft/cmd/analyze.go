package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/prosecraft/prosecraft/internal/account"
	"github.com/prosecraft/prosecraft/internal/analysis"
	"github.com/prosecraft/prosecraft/internal/ui"
)

var analyzeFile string

var analyzeCmd = &cobra.Command{
	Use:       "analyze <grammar|style|tone|plagiarism> [text...]",
	Short:     "Run an AI analysis on a piece of writing",
	Long:      "Run an AI analysis on text given as arguments, read from --file, or piped on stdin.",
	Example:   "  prosecraft analyze grammar \"Their going to the park.\"\n  prosecraft analyze tone --file draft.md\n  pbpaste | prosecraft analyze style",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: []string{"grammar", "style", "tone", "plagiarism"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := analysis.ParseKind(args[0])
		if err != nil {
			return err
		}
		text, err := readDraft(kind, args[1:])
		if err != nil {
			return err
		}
		return runAnalysis(cmd.Context(), kind, text)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the text from a file")
}

func readDraft(kind analysis.Kind, args []string) (string, error) {
	switch {
	case len(args) > 0 && analyzeFile != "":
		return "", errors.New("pass text as arguments or --file, not both")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", analyzeFile, err)
		}
		return string(data), nil
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		return promptDraft(kind)
	}
}

func promptDraft(kind analysis.Kind) (string, error) {
	var text string
	err := huh.NewText().
		Title(kind.Title()).
		Description("Paste or type your text, then press enter to submit").
		CharLimit(0).
		Value(&text).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return analysis.ErrEmptyText
			}
			return nil
		}).
		WithTheme(ui.HuhTheme()).
		Run()
	return text, err
}

func runAnalysis(ctx context.Context, kind analysis.Kind, text string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return analysis.ErrEmptyText
	}

	var result any
	err = ui.RunWithSpinner(ctx, "Running "+strings.ToLower(kind.Title()), func(ctx context.Context) error {
		var runErr error
		result, runErr = a.analyzer.Run(ctx, kind, text)
		return runErr
	})
	if err != nil {
		if errors.Is(err, analysis.ErrAnalysisFailed) {
			logger.Debug("analysis failed", "kind", kind, "error", err)
			return fmt.Errorf("%s: %w", kind.FailureMessage(), err)
		}
		return err
	}

	fmt.Println(renderAnalysis(kind, result))
	recordUsage(ctx, a, kind, text)
	return nil
}

func recordUsage(ctx context.Context, a *appState, kind analysis.Kind, text string) {
	delta := usageDelta(kind, analysis.WordCount(text))
	if _, err := a.accounts.RecordUsage(ctx, delta); err != nil && !errors.Is(err, account.ErrNotSignedIn) {
		logger.Warn("could not update usage statistics", "error", err)
	}
}

func usageDelta(kind analysis.Kind, words int) account.UsageDelta {
	delta := account.UsageDelta{WordsAnalyzed: words}
	switch kind {
	case analysis.KindGrammar:
		delta.GrammarChecks = 1
	case analysis.KindStyle:
		delta.StyleEnhancements = 1
	}
	return delta
}
