package ui

import (
	"github.com/prosecraft/prosecraft/internal/prefs"
)

// Preferences controls runtime UI settings.
type Preferences struct {
	ShowBanner bool
	NoColor    bool
	// Gap is the number of blank lines between sections.
	Gap int
	// WrapWidth is the column analysis output is wrapped at.
	WrapWidth int
}

const baseWrapWidth = 80

// CurrentPreferences holds the active UI preferences.
var CurrentPreferences = Preferences{
	ShowBanner: true,
	Gap:        1,
	WrapWidth:  baseWrapWidth,
}

// ApplyPreferences updates the banner and color switches and rebuilds styles.
func ApplyPreferences(showBanner, noColor bool) {
	CurrentPreferences.ShowBanner = showBanner
	CurrentPreferences.NoColor = noColor
	palette := active
	palette.Disabled = noColor
	ApplyPalette(palette)
}

// ApplyProfile switches colors and spacing to the given presentation profile.
func ApplyProfile(p prefs.PresentationProfile) {
	CurrentPreferences.Gap = GapFor(p.Spacing)
	CurrentPreferences.WrapWidth = WrapWidthFor(p.FontSizes)
	palette := PaletteFromProfile(p)
	palette.Disabled = CurrentPreferences.NoColor
	ApplyPalette(palette)
}

// GapFor converts the spacing scale to blank lines: compact 0, comfortable 1,
// spacious 2.
func GapFor(s prefs.SpacingScale) int {
	return max(0, (s.MD-12)/4)
}

// WrapWidthFor narrows the text column as the font tier grows.
func WrapWidthFor(f prefs.FontSizeScale) int {
	if f.Medium <= 0 {
		return baseWrapWidth
	}
	return baseWrapWidth * 16 / f.Medium
}
