package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prosecraft/prosecraft/internal/analysis"
	"github.com/prosecraft/prosecraft/internal/config"
	"github.com/prosecraft/prosecraft/internal/ui"
)

var (
	verbose        bool
	quiet          bool
	noColor        bool
	cfgFile        string
	storageBackend string
	logger         *log.Logger
	cfg            *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "prosecraft",
	Short: "AI writing assistant for the terminal",
	Long: ui.Banner() + `
prosecraft checks grammar, enhances style, analyzes tone and flags
plagiarism risk, with appearance preferences that follow you between runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("could not read .env", "error", err)
		}

		if err := loadConfig(); err != nil {
			return err
		}
		applyUISettings()
		setupLogger()

		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "about" {
			return nil
		}

		var err error
		app, err = openApp(cmd.Context())
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractiveTerminal() {
			return cmd.Help()
		}
		return runHome(cmd.Context())
	},
}

func loadConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		logger.Warn("could not load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	cfg.ApplyEnv()
	if storageBackend != "" {
		cfg.Storage.Backend = storageBackend
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func runHome(ctx context.Context) error {
	var last string
	for {
		choice, err := ui.RunMenu("PROSECRAFT", "Polish your writing with AI.", homeMenuItems(),
			ui.WithInitialSelectionID(last),
			ui.WithInfoSection(appearanceSection()),
			ui.WithInfoSection(accountSection()),
		)
		if err != nil {
			logger.Debug("menu unavailable, using prompt", "error", err)
			return runHomeFallback(ctx)
		}

		if choice == ui.MenuActionQuit || choice == "exit" || choice == "" {
			return nil
		}
		last = choice

		if err := runHomeChoice(ctx, choice); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("✗ "+err.Error()))
		} else if choice == "account" {
			// The account menu pauses after each action itself.
			continue
		}

		if err := waitForEnter("Press enter to return home"); err != nil {
			return err
		}
	}
}

func homeMenuItems() []ui.MenuItem {
	items := make([]ui.MenuItem, 0, 10)
	for _, kind := range analysis.Kinds() {
		items = append(items, ui.MenuItem{ID: "analyze:" + string(kind), TitleText: kind.Title(), Details: analysisDetails[kind]})
	}
	return append(items,
		ui.MenuItem{ID: "appearance", TitleText: "Appearance", Details: "Theme, accent color, font size and layout density"},
		ui.MenuItem{ID: "account", TitleText: "Account", Details: "Profile and usage statistics"},
		ui.MenuItem{ID: "doctor", TitleText: "Doctor", Details: "Check configuration, storage and API settings"},
		ui.MenuItem{ID: "about", TitleText: "Help & Support", Details: "Questions, contact and what prosecraft stores"},
		ui.MenuItem{ID: "exit", TitleText: "Exit", Details: "Close prosecraft"},
	)
}

var analysisDetails = map[analysis.Kind]string{
	analysis.KindGrammar:    "Find and fix grammar, spelling and punctuation errors",
	analysis.KindStyle:      "Improve clarity, flow and word choice",
	analysis.KindTone:       "Rate formality, sentiment, confidence and clarity",
	analysis.KindPlagiarism: "Estimate originality and plagiarism risk",
}

func runHomeChoice(ctx context.Context, choice string) error {
	switch choice {
	case "appearance":
		appearanceCmd.SetContext(ctx)
		return runAppearance(appearanceCmd, nil)
	case "account":
		return runAccountMenu(ctx)
	case "doctor":
		doctorCmd.SetContext(ctx)
		return runDoctor(doctorCmd, nil)
	case "about":
		return runAbout(aboutCmd, nil)
	case "exit", ui.MenuActionQuit, "":
		return nil
	}

	if kindName, ok := strings.CutPrefix(choice, "analyze:"); ok {
		kind, err := analysis.ParseKind(kindName)
		if err != nil {
			return err
		}
		text, err := promptDraft(kind)
		if err != nil {
			return err
		}
		return runAnalysis(ctx, kind, text)
	}
	return nil
}

func runHomeFallback(ctx context.Context) error {
	ui.StartScreen("PROSECRAFT", "Polish your writing with AI.")
	options := make([]huh.Option[string], 0, 10)
	for _, item := range homeMenuItems() {
		options = append(options, huh.NewOption(item.TitleText, item.ID))
	}

	var choice string
	err := huh.NewSelect[string]().
		Title("Home").
		Description("What would you like to do?").
		Options(options...).
		Value(&choice).
		WithTheme(ui.HuhTheme()).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	return runHomeChoice(ctx, choice)
}

func waitForEnter(prompt string) error {
	if !ui.IsInteractiveTerminal() {
		return nil
	}
	fmt.Println()
	fmt.Println(ui.HintStyle.Render(prompt))
	reader := bufio.NewReader(os.Stdin)
	_, err := reader.ReadString('\n')
	return err
}

// Execute runs the root command and releases storage afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := app.close(); cerr != nil {
		logger.Error("shutting down", "error", cerr)
		if err == nil {
			err = cerr
		}
	}
	if err != nil && !errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Error: ")+err.Error())
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: <config dir>/prosecraft/prosecraft.yaml)")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "Storage backend: file, sqlite, redis or memory")

	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(appearanceCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(versionCmd)
}

func applyUISettings() {
	if cfg == nil {
		ui.ApplyPreferences(true, noColor)
		return
	}
	ui.ApplyPreferences(cfg.UI.ShowBanner, cfg.UI.NoColor || noColor)
}

func setupLogger() {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.WarnLevel
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	logger.SetStyles(logStyles())
}

// logStyles colours the level labels from the active palette.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	if noColor || ui.CurrentPreferences.NoColor || os.Getenv("NO_COLOR") != "" {
		return styles
	}
	levels := []struct {
		level log.Level
		label string
		color lipgloss.TerminalColor
	}{
		{log.DebugLevel, "DEBUG", ui.Muted},
		{log.InfoLevel, "INFO", ui.Primary},
		{log.WarnLevel, "WARN", ui.Warning},
		{log.ErrorLevel, "ERROR", ui.Error},
	}
	for _, l := range levels {
		styles.Levels[l.level] = lipgloss.NewStyle().SetString(l.label).Foreground(l.color).Bold(true)
	}
	return styles
}
