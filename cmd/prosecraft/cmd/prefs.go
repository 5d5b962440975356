package cmd

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/prosecraft/prosecraft/internal/prefs"
	"github.com/prosecraft/prosecraft/internal/ui"
)

var prefsShowYAML bool

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"preferences"},
	Short:   "Show or change display preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences and the derived presentation profile",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set KEY=VALUE...",
	Short: "Change one or more preferences",
	Long: `Change one or more preferences. Keys: theme (dark, light, auto),
colorScheme (cyan, blue, purple, green, orange, pink), fontSize (small,
medium, large), layoutDensity (compact, comfortable, spacious).`,
	Example: "  prosecraft prefs set theme=light colorScheme=purple\n  prosecraft prefs set fontSize=large,layoutDensity=compact",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runPrefsSet,
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsReset,
}

func init() {
	prefsShowCmd.Flags().BoolVar(&prefsShowYAML, "yaml", false, "Print as YAML")
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsResetCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	set := a.prefs.Preferences()
	profile := a.prefs.PresentationProfile()

	if prefsShowYAML {
		out, err := yaml.Marshal(struct {
			Preferences prefs.PreferenceSet       `yaml:"preferences"`
			Profile     prefs.PresentationProfile `yaml:"profile"`
		}{set, profile})
		if err != nil {
			return fmt.Errorf("encoding preferences: %w", err)
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	fmt.Println(renderPreferences(set, profile))
	return nil
}

func renderPreferences(set prefs.PreferenceSet, profile prefs.PresentationProfile) string {
	const width = 16
	var b strings.Builder

	b.WriteString(ui.TableHeader.Render("Preferences") + "\n")
	for _, key := range prefs.Keys() {
		value, _ := set.Value(key)
		b.WriteString(ui.KeyValue(key, value, width) + "\n")
	}

	b.WriteString(ui.Gap())
	b.WriteString(ui.TableHeader.Render("Presentation") + "\n")
	b.WriteString(ui.KeyValue("mode", string(profile.Mode), width) + "\n")
	colors := []struct{ label, hex string }{
		{"primary", profile.Colors.Primary},
		{"background", profile.Colors.Background},
		{"surface", profile.Colors.Surface},
		{"text", profile.Colors.Text},
		{"textSecondary", profile.Colors.TextSecondary},
		{"border", profile.Colors.Border},
	}
	for _, c := range colors {
		b.WriteString(ui.KeyValue(c.label, ui.Swatch(c.hex), width) + "\n")
	}
	s := profile.Spacing
	b.WriteString(ui.KeyValue("spacing", joinInts(s.XS, s.SM, s.MD, s.LG, s.XL), width) + "\n")
	f := profile.FontSizes
	b.WriteString(ui.KeyValue("fontSizes", joinInts(f.Small, f.Medium, f.Large), width) + "\n")
	b.WriteString(ui.KeyValue("inputFontSize", strconv.Itoa(profile.InputFontSize()), width))
	return b.String()
}

func joinInts(values ...int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " / ")
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	pairs, err := parseKeyValueArgs(args)
	if err != nil {
		return err
	}

	resolved, err := resolvePreferencePairs(pairs)
	if err != nil {
		return err
	}

	for _, key := range prefs.Keys() {
		value, ok := resolved[key]
		if !ok {
			continue
		}
		if err := a.prefs.Set(key, value); err != nil {
			return err
		}
		logger.Debug("preference changed", "key", key, "value", value)
	}

	if err := syncPreferences(cmd.Context(), a); err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Preferences updated"))
	fmt.Println(renderPreferences(a.prefs.Preferences(), a.prefs.PresentationProfile()))
	return nil
}

func runPrefsReset(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	a.prefs.Reset()
	if err := syncPreferences(cmd.Context(), a); err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render("✓ Preferences reset to defaults"))
	return nil
}

// syncPreferences waits for queued writes and reports a failed save as a
// warning; the change still applies to this session.
func syncPreferences(ctx context.Context, a *appState) error {
	if err := a.prefs.Flush(ctx); err != nil {
		return err
	}
	if err := a.prefs.LastSyncError(); err != nil {
		fmt.Fprintln(os.Stderr, ui.WarningStyle.Render("! Change applied but not saved: "+err.Error()))
	}
	return nil
}

func validatePreference(key, value string) error {
	var err error
	switch key {
	case prefs.KeyTheme:
		_, err = prefs.ParseThemeMode(value)
	case prefs.KeyColorScheme:
		_, err = prefs.ParseAccentScheme(value)
	case prefs.KeyFontSize:
		_, err = prefs.ParseFontSizeTier(value)
	case prefs.KeyLayoutDensity:
		_, err = prefs.ParseLayoutDensity(value)
	}
	return err
}

var preferenceKeyAliases = map[string]string{
	"theme":         prefs.KeyTheme,
	"mode":          prefs.KeyTheme,
	"colorscheme":   prefs.KeyColorScheme,
	"color":         prefs.KeyColorScheme,
	"accent":        prefs.KeyColorScheme,
	"fontsize":      prefs.KeyFontSize,
	"font":          prefs.KeyFontSize,
	"layoutdensity": prefs.KeyLayoutDensity,
	"density":       prefs.KeyLayoutDensity,
}

// resolvePreferencePairs maps aliases to storage keys and validates every
// value before any of them is applied. Two aliases for one key are rejected.
func resolvePreferencePairs(pairs map[string]string) (map[string]string, error) {
	resolved := make(map[string]string, len(pairs))
	given := make(map[string]string, len(pairs))
	var errs []error
	for _, rawKey := range slices.Sorted(maps.Keys(pairs)) {
		value := pairs[rawKey]
		key, ok := resolvePreferenceKey(rawKey)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: unknown key %q (expected %s)", prefs.ErrInvalidPreferenceValue, rawKey, strings.Join(prefs.Keys(), ", ")))
			continue
		}
		if prev, dup := given[key]; dup {
			errs = append(errs, fmt.Errorf("%w: %q and %q both set %s", prefs.ErrInvalidPreferenceValue, prev, rawKey, key))
			continue
		}
		given[key] = rawKey
		if err := validatePreference(key, value); err != nil {
			errs = append(errs, err)
			continue
		}
		resolved[key] = value
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return resolved, nil
}

func resolvePreferenceKey(raw string) (string, bool) {
	normalized := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(raw)))
	key, ok := preferenceKeyAliases[normalized]
	return key, ok
}
