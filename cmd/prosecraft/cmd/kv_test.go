package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosecraft/prosecraft/internal/prefs"
)

func TestParseKeyValueArgs(t *testing.T) {
	got, err := parseKeyValueArgs([]string{"theme=light", "colorScheme = purple,fontSize=large", ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"theme":       "light",
		"colorScheme": "purple",
		"fontSize":    "large",
	}, got)

	got, err = parseKeyValueArgs([]string{"theme=light", "theme=dark"})
	require.NoError(t, err)
	assert.Equal(t, "dark", got["theme"])
}

func TestSplitKeyValue_Errors(t *testing.T) {
	_, _, err := splitKeyValue("theme")
	assert.ErrorContains(t, err, "expected KEY=VALUE")

	_, _, err = splitKeyValue(" =dark")
	assert.ErrorContains(t, err, "empty key")

	key, value, err := splitKeyValue("layoutDensity=")
	require.NoError(t, err)
	assert.Equal(t, "layoutDensity", key)
	assert.Empty(t, value)
}

func TestResolvePreferenceKey(t *testing.T) {
	tests := map[string]string{
		"theme":          "theme",
		"colorscheme":    "colorScheme",
		"color-scheme":   "colorScheme",
		"accent":         "colorScheme",
		"font-size":      "fontSize",
		"FONTSIZE":       "fontSize",
		"density":        "layoutDensity",
		"layout_density": "layoutDensity",
	}
	for in, want := range tests {
		got, ok := resolvePreferenceKey(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := resolvePreferenceKey("wallpaper")
	assert.False(t, ok)
}

func TestResolvePreferencePairs(t *testing.T) {
	got, err := resolvePreferencePairs(map[string]string{"mode": "light", "accent": "Purple", "font-size": "large"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		prefs.KeyTheme:       "light",
		prefs.KeyColorScheme: "Purple",
		prefs.KeyFontSize:    "large",
	}, got)

	tests := []struct {
		name    string
		pairs   map[string]string
		wantMsg string
	}{
		{name: "two aliases for theme", pairs: map[string]string{"theme": "light", "mode": "dark"}, wantMsg: `"mode" and "theme" both set theme`},
		{name: "unknown key", pairs: map[string]string{"wallpaper": "blue"}, wantMsg: "unknown key"},
		{name: "bad value", pairs: map[string]string{"density": "cozy"}, wantMsg: "cozy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePreferencePairs(tt.pairs)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, prefs.ErrInvalidPreferenceValue)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}
}
