package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_Defaults(t *testing.T) {
	got := Derive(Defaults(), nil)

	assert.Equal(t, PresentationProfile{
		Mode: ThemeDark,
		Colors: ColorPalette{
			Primary:       "#00BCD4",
			Background:    "#1A1A2E",
			Surface:       "#2B2B3A",
			Text:          "#FFFFFF",
			TextSecondary: "#BBBBBB",
			Border:        "#35354A",
		},
		Spacing:   SpacingScale{XS: 6, SM: 12, MD: 16, LG: 20, XL: 28},
		FontSizes: FontSizeScale{Small: 14, Medium: 16, Large: 18},
	}, got)
}

func TestDerive_LightPalette(t *testing.T) {
	set := Defaults()
	set.ThemeMode = ThemeLight
	set.AccentScheme = AccentOrange

	got := Derive(set, nil)

	assert.Equal(t, ColorPalette{
		Primary:       "#FF9800",
		Background:    "#FFFFFF",
		Surface:       "#F5F5F5",
		Text:          "#1A1A2E",
		TextSecondary: "#666666",
		Border:        "#E0E0E0",
	}, got.Colors)
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name   string
		mode   ThemeMode
		detect AppearanceDetector
		want   ThemeMode
	}{
		{name: "dark", mode: ThemeDark, want: ThemeDark},
		{name: "light", mode: ThemeLight, detect: func() bool { return true }, want: ThemeLight},
		{name: "auto without detector", mode: ThemeAuto, want: ThemeLight},
		{name: "auto on dark display", mode: ThemeAuto, detect: func() bool { return true }, want: ThemeDark},
		{name: "auto on light display", mode: ThemeAuto, detect: func() bool { return false }, want: ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMode(tt.mode, tt.detect))
		})
	}
}

func TestTables_CoverEveryValue(t *testing.T) {
	accents := map[AccentScheme]string{
		AccentCyan:   "#00BCD4",
		AccentBlue:   "#2196F3",
		AccentPurple: "#9C27B0",
		AccentGreen:  "#4CAF50",
		AccentOrange: "#FF9800",
		AccentPink:   "#E91E63",
	}
	require.Len(t, AccentSchemes(), len(accents))
	for scheme, hex := range accents {
		assert.Equal(t, hex, AccentColor(scheme), scheme)
	}

	assert.Equal(t, SpacingScale{XS: 4, SM: 8, MD: 12, LG: 16, XL: 24}, SpacingFor(DensityCompact))
	assert.Equal(t, SpacingScale{XS: 6, SM: 12, MD: 16, LG: 20, XL: 28}, SpacingFor(DensityComfortable))
	assert.Equal(t, SpacingScale{XS: 8, SM: 16, MD: 20, LG: 24, XL: 32}, SpacingFor(DensitySpacious))

	assert.Equal(t, FontSizeScale{Small: 12, Medium: 14, Large: 16}, FontSizesFor(FontSmall))
	assert.Equal(t, FontSizeScale{Small: 14, Medium: 16, Large: 18}, FontSizesFor(FontMedium))
	assert.Equal(t, FontSizeScale{Small: 16, Medium: 18, Large: 20}, FontSizesFor(FontLarge))
}

func TestParse(t *testing.T) {
	mode, err := ParseThemeMode(" LIGHT ")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, mode)

	_, err = ParseAccentScheme("magenta")
	assert.ErrorIs(t, err, ErrInvalidPreferenceValue)
	assert.Contains(t, err.Error(), "cyan, blue, purple, green, orange, pink")

	_, err = ParseFontSizeTier("")
	assert.ErrorIs(t, err, ErrInvalidPreferenceValue)

	density, err := ParseLayoutDensity("Spacious")
	require.NoError(t, err)
	assert.Equal(t, DensitySpacious, density)
}

func TestPreferenceSetValue(t *testing.T) {
	set := Defaults()
	for _, key := range Keys() {
		v, ok := set.Value(key)
		assert.True(t, ok, key)
		assert.NotEmpty(t, v, key)
	}
	_, ok := set.Value("nope")
	assert.False(t, ok)
}
