// Package prefs owns the user's display preferences, persists them to a
// key-value backend and derives the presentation values every screen uses.
package prefs

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidPreferenceValue is returned when a value is outside its field's domain.
var ErrInvalidPreferenceValue = errors.New("invalid preference value")

// Storage keys for the four persisted fields.
const (
	KeyTheme         = "theme"
	KeyColorScheme   = "colorScheme"
	KeyFontSize      = "fontSize"
	KeyLayoutDensity = "layoutDensity"
)

// Keys returns the persisted keys in display order.
func Keys() []string {
	return []string{KeyTheme, KeyColorScheme, KeyFontSize, KeyLayoutDensity}
}

// ThemeMode selects the light or dark palette.
type ThemeMode string

const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
	ThemeAuto  ThemeMode = "auto"
)

// AccentScheme is the user-chosen primary color.
type AccentScheme string

const (
	AccentCyan   AccentScheme = "cyan"
	AccentBlue   AccentScheme = "blue"
	AccentPurple AccentScheme = "purple"
	AccentGreen  AccentScheme = "green"
	AccentOrange AccentScheme = "orange"
	AccentPink   AccentScheme = "pink"
)

// FontSizeTier scales text sizes.
type FontSizeTier string

const (
	FontSmall  FontSizeTier = "small"
	FontMedium FontSizeTier = "medium"
	FontLarge  FontSizeTier = "large"
)

// LayoutDensity scales spacing.
type LayoutDensity string

const (
	DensityCompact     LayoutDensity = "compact"
	DensityComfortable LayoutDensity = "comfortable"
	DensitySpacious    LayoutDensity = "spacious"
)

// ThemeModes returns the theme mode domain.
func ThemeModes() []ThemeMode {
	return []ThemeMode{ThemeDark, ThemeLight, ThemeAuto}
}

// AccentSchemes returns the accent scheme domain.
func AccentSchemes() []AccentScheme {
	return []AccentScheme{AccentCyan, AccentBlue, AccentPurple, AccentGreen, AccentOrange, AccentPink}
}

// FontSizeTiers returns the font size domain.
func FontSizeTiers() []FontSizeTier {
	return []FontSizeTier{FontSmall, FontMedium, FontLarge}
}

// LayoutDensities returns the layout density domain.
func LayoutDensities() []LayoutDensity {
	return []LayoutDensity{DensityCompact, DensityComfortable, DensitySpacious}
}

// Validate reports whether the mode is in its domain.
func (m ThemeMode) Validate() error { return validateEnum(KeyTheme, m, ThemeModes()) }

// Validate reports whether the scheme is in its domain.
func (a AccentScheme) Validate() error { return validateEnum(KeyColorScheme, a, AccentSchemes()) }

// Validate reports whether the tier is in its domain.
func (f FontSizeTier) Validate() error { return validateEnum(KeyFontSize, f, FontSizeTiers()) }

// Validate reports whether the density is in its domain.
func (d LayoutDensity) Validate() error { return validateEnum(KeyLayoutDensity, d, LayoutDensities()) }

// ParseThemeMode normalizes and validates a theme mode.
func ParseThemeMode(raw string) (ThemeMode, error) {
	m := ThemeMode(normalize(raw))
	return m, m.Validate()
}

// ParseAccentScheme normalizes and validates an accent scheme.
func ParseAccentScheme(raw string) (AccentScheme, error) {
	a := AccentScheme(normalize(raw))
	return a, a.Validate()
}

// ParseFontSizeTier normalizes and validates a font size tier.
func ParseFontSizeTier(raw string) (FontSizeTier, error) {
	f := FontSizeTier(normalize(raw))
	return f, f.Validate()
}

// ParseLayoutDensity normalizes and validates a layout density.
func ParseLayoutDensity(raw string) (LayoutDensity, error) {
	d := LayoutDensity(normalize(raw))
	return d, d.Validate()
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validateEnum[T ~string](key string, value T, domain []T) error {
	// Validate on the plain string: the enum types implement Validatable.
	allowed := make([]interface{}, len(domain))
	for i, v := range domain {
		allowed[i] = string(v)
	}
	err := validation.Validate(string(value),
		validation.Required.Error("must not be empty"),
		validation.In(allowed...).Error("must be one of "+joinDomain(domain)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s %q %v", ErrInvalidPreferenceValue, key, string(value), err)
	}
	return nil
}

func joinDomain[T ~string](domain []T) string {
	parts := make([]string, len(domain))
	for i, v := range domain {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// PreferenceSet is the user's current display configuration.
type PreferenceSet struct {
	ThemeMode     ThemeMode     `json:"theme" yaml:"theme"`
	AccentScheme  AccentScheme  `json:"colorScheme" yaml:"colorScheme"`
	FontSizeTier  FontSizeTier  `json:"fontSize" yaml:"fontSize"`
	LayoutDensity LayoutDensity `json:"layoutDensity" yaml:"layoutDensity"`
}

// Defaults returns the documented default preferences.
func Defaults() PreferenceSet {
	return PreferenceSet{
		ThemeMode:     ThemeDark,
		AccentScheme:  AccentCyan,
		FontSizeTier:  FontMedium,
		LayoutDensity: DensityComfortable,
	}
}

// Value returns the stored string for a persisted key.
func (p PreferenceSet) Value(key string) (string, bool) {
	switch key {
	case KeyTheme:
		return string(p.ThemeMode), true
	case KeyColorScheme:
		return string(p.AccentScheme), true
	case KeyFontSize:
		return string(p.FontSizeTier), true
	case KeyLayoutDensity:
		return string(p.LayoutDensity), true
	default:
		return "", false
	}
}
