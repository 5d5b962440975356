package prefs

// ColorPalette holds hex colors for the active theme.
type ColorPalette struct {
	Primary       string `json:"primary" yaml:"primary"`
	Background    string `json:"background" yaml:"background"`
	Surface       string `json:"surface" yaml:"surface"`
	Text          string `json:"text" yaml:"text"`
	TextSecondary string `json:"textSecondary" yaml:"textSecondary"`
	Border        string `json:"border" yaml:"border"`
}

// SpacingScale is the pixel spacing scale for a layout density.
type SpacingScale struct {
	XS int `json:"xs" yaml:"xs"`
	SM int `json:"sm" yaml:"sm"`
	MD int `json:"md" yaml:"md"`
	LG int `json:"lg" yaml:"lg"`
	XL int `json:"xl" yaml:"xl"`
}

// FontSizeScale is the pixel font scale for a font size tier.
type FontSizeScale struct {
	Small  int `json:"small" yaml:"small"`
	Medium int `json:"medium" yaml:"medium"`
	Large  int `json:"large" yaml:"large"`
}

// PresentationProfile is the ready-to-use style derived from a PreferenceSet.
type PresentationProfile struct {
	// Mode is the resolved theme, never ThemeAuto.
	Mode      ThemeMode     `json:"mode" yaml:"mode"`
	Colors    ColorPalette  `json:"colors" yaml:"colors"`
	Spacing   SpacingScale  `json:"spacing" yaml:"spacing"`
	FontSizes FontSizeScale `json:"fontSizes" yaml:"fontSizes"`
}

// InputFontSize is the size used for text inputs.
func (p PresentationProfile) InputFontSize() int {
	return p.FontSizes.Medium
}

// AppearanceDetector reports whether the display prefers a dark theme.
// It is consulted only for ThemeAuto.
type AppearanceDetector func() bool

// Derive computes the presentation profile for a preference set.
func Derive(set PreferenceSet, detect AppearanceDetector) PresentationProfile {
	mode := ResolveMode(set.ThemeMode, detect)

	colors := themeColors(mode)
	colors.Primary = AccentColor(set.AccentScheme)

	return PresentationProfile{
		Mode:      mode,
		Colors:    colors,
		Spacing:   SpacingFor(set.LayoutDensity),
		FontSizes: FontSizesFor(set.FontSizeTier),
	}
}

// ResolveMode maps auto to dark or light. Without a detector auto is light.
func ResolveMode(mode ThemeMode, detect AppearanceDetector) ThemeMode {
	switch mode {
	case ThemeDark:
		return ThemeDark
	case ThemeAuto:
		if detect != nil && detect() {
			return ThemeDark
		}
		return ThemeLight
	default:
		return ThemeLight
	}
}

// AccentColor returns the hex color for an accent scheme.
func AccentColor(a AccentScheme) string {
	switch a {
	case AccentBlue:
		return "#2196F3"
	case AccentPurple:
		return "#9C27B0"
	case AccentGreen:
		return "#4CAF50"
	case AccentOrange:
		return "#FF9800"
	case AccentPink:
		return "#E91E63"
	default:
		return "#00BCD4"
	}
}

func themeColors(mode ThemeMode) ColorPalette {
	if mode == ThemeDark {
		return ColorPalette{
			Background:    "#1A1A2E",
			Surface:       "#2B2B3A",
			Text:          "#FFFFFF",
			TextSecondary: "#BBBBBB",
			Border:        "#35354A",
		}
	}
	return ColorPalette{
		Background:    "#FFFFFF",
		Surface:       "#F5F5F5",
		Text:          "#1A1A2E",
		TextSecondary: "#666666",
		Border:        "#E0E0E0",
	}
}

// SpacingFor returns the spacing scale for a density.
func SpacingFor(d LayoutDensity) SpacingScale {
	switch d {
	case DensityCompact:
		return SpacingScale{XS: 4, SM: 8, MD: 12, LG: 16, XL: 24}
	case DensitySpacious:
		return SpacingScale{XS: 8, SM: 16, MD: 20, LG: 24, XL: 32}
	default:
		return SpacingScale{XS: 6, SM: 12, MD: 16, LG: 20, XL: 28}
	}
}

// FontSizesFor returns the font scale for a tier.
func FontSizesFor(f FontSizeTier) FontSizeScale {
	switch f {
	case FontSmall:
		return FontSizeScale{Small: 12, Medium: 14, Large: 16}
	case FontLarge:
		return FontSizeScale{Small: 16, Medium: 18, Large: 20}
	default:
		return FontSizeScale{Small: 14, Medium: 16, Large: 18}
	}
}
