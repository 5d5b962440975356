package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prosecraft/prosecraft/internal/config"
	"github.com/prosecraft/prosecraft/internal/ui"
	"github.com/prosecraft/prosecraft/internal/validate"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, storage and API settings",
	Long: `Check the local installation:
  - Configuration (prosecraft.yaml)
  - Storage backend read/write
  - Stored preferences
  - Analysis API settings`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	configPath := cfgFile
	if configPath == "" {
		configPath, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}

	ui.StartScreen("DOCTOR", "Check configuration, storage and API settings")

	checks := []func(context.Context) validate.Result{
		func(ctx context.Context) validate.Result { return validate.Config(ctx, configPath) },
		func(ctx context.Context) validate.Result { return validate.Storage(ctx, cfg.Storage.Backend, a.store) },
		func(ctx context.Context) validate.Result { return validate.Preferences(ctx, a.store) },
		func(ctx context.Context) validate.Result { return validate.Analysis(ctx, cfg.Analysis) },
	}

	var errs, warnings []string
	for i, check := range checks {
		result := check(ctx)
		if i > 0 {
			fmt.Print(ui.Gap())
		}
		fmt.Println(renderResult(result))
		errs = append(errs, result.Errors...)
		warnings = append(warnings, result.Warnings...)
	}

	fmt.Println()
	switch {
	case len(errs) > 0:
		fmt.Println(ui.ErrorBox.Render(fmt.Sprintf("%d problem(s) found\n\n%s", len(errs), strings.Join(errs, "\n"))))
		return fmt.Errorf("doctor found %d problem(s)", len(errs))
	case len(warnings) > 0:
		fmt.Println(ui.InfoBox.Render(fmt.Sprintf("All checks passed with %d warning(s)\n\n%s", len(warnings), strings.Join(warnings, "\n"))))
	default:
		fmt.Println(ui.SuccessStyle.Render("✓ All checks passed"))
	}
	return nil
}

func renderResult(result validate.Result) string {
	lines := []string{ui.Title.UnsetMarginBottom().Render(result.Title)}
	for _, item := range result.Items {
		line := "  " + statusGlyph(item.Status) + " " + item.Name
		if item.Details != "" {
			line += " " + ui.MutedStyle.Render("("+item.Details+")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func statusGlyph(status validate.Status) string {
	switch status {
	case validate.StatusSuccess:
		return ui.StatusSuccess.String()
	case validate.StatusWarning:
		return ui.StatusWarning.String()
	case validate.StatusError:
		return ui.StatusError.String()
	default:
		return ui.StatusPending.String()
	}
}
