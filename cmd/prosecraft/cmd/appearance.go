package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/prosecraft/prosecraft/internal/prefs"
	"github.com/prosecraft/prosecraft/internal/ui"
)

var appearanceCmd = &cobra.Command{
	Use:   "appearance",
	Short: "Choose theme, accent color, font size and layout density",
	Args:  cobra.NoArgs,
	RunE:  runAppearance,
}

var (
	themeLabels = map[prefs.ThemeMode]string{
		prefs.ThemeDark:  "Dark",
		prefs.ThemeLight: "Light",
		prefs.ThemeAuto:  "Auto (follow terminal)",
	}
	fontSizeLabels = map[prefs.FontSizeTier]string{
		prefs.FontSmall:  "Small",
		prefs.FontMedium: "Medium",
		prefs.FontLarge:  "Large",
	}
	densityLabels = map[prefs.LayoutDensity]string{
		prefs.DensityCompact:     "Compact",
		prefs.DensityComfortable: "Comfortable",
		prefs.DensitySpacious:    "Spacious",
	}
)

func runAppearance(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if !ui.IsInteractiveTerminal() {
		return errors.New("appearance needs an interactive terminal; use 'prosecraft prefs set' instead")
	}

	current := a.prefs.Preferences()
	theme := current.ThemeMode
	accent := current.AccentScheme
	fontSize := current.FontSizeTier
	density := current.LayoutDensity

	ui.StartScreen("APPEARANCE", "Customize how prosecraft looks")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[prefs.ThemeMode]().
				Title("Theme").
				Description("Dark, light, or follow the terminal background").
				Options(labeledOptions(prefs.ThemeModes(), themeLabels)...).
				Value(&theme),
			huh.NewSelect[prefs.AccentScheme]().
				Title("Accent Color").
				Description("Used for highlights, selections and headers").
				Options(accentOptions()...).
				Value(&accent),
			huh.NewSelect[prefs.FontSizeTier]().
				Title("Font Size").
				Description("Larger sizes wrap analysis output at a narrower width").
				Options(labeledOptions(prefs.FontSizeTiers(), fontSizeLabels)...).
				Value(&fontSize),
			huh.NewSelect[prefs.LayoutDensity]().
				Title("Layout Density").
				Description("Spacing between sections").
				Options(labeledOptions(prefs.LayoutDensities(), densityLabels)...).
				Value(&density),
		),
	).WithTheme(ui.HuhTheme()).WithKeyMap(newHuhBackOnQKeyMap())

	if err := form.Run(); err != nil {
		return err
	}

	for _, apply := range []func() error{
		func() error { return a.prefs.SetThemeMode(theme) },
		func() error { return a.prefs.SetAccentScheme(accent) },
		func() error { return a.prefs.SetFontSizeTier(fontSize) },
		func() error { return a.prefs.SetLayoutDensity(density) },
	} {
		if err := apply(); err != nil {
			return err
		}
	}

	if err := syncPreferences(cmd.Context(), a); err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Appearance saved"))
	fmt.Println(renderPreferences(a.prefs.Preferences(), a.prefs.PresentationProfile()))
	return nil
}

func labeledOptions[T ~string](values []T, labels map[T]string) []huh.Option[T] {
	options := make([]huh.Option[T], 0, len(values))
	for _, v := range values {
		label, ok := labels[v]
		if !ok {
			label = string(v)
		}
		options = append(options, huh.NewOption(label, v))
	}
	return options
}

func accentOptions() []huh.Option[prefs.AccentScheme] {
	options := make([]huh.Option[prefs.AccentScheme], 0, len(prefs.AccentSchemes()))
	for _, scheme := range prefs.AccentSchemes() {
		options = append(options, huh.NewOption(ui.Swatch(prefs.AccentColor(scheme))+" "+string(scheme), scheme))
	}
	return options
}

func appearanceSection() ui.InfoSection {
	section := ui.InfoSection{Title: "Appearance"}
	if app == nil {
		return section
	}
	set := app.prefs.Preferences()
	for _, key := range prefs.Keys() {
		value, _ := set.Value(key)
		section.Lines = append(section.Lines, ui.InfoLine{Label: key, Value: value})
	}
	return section
}
