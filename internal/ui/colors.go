package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/prosecraft/prosecraft/internal/prefs"
)

// Palette defines the TUI color palette.
type Palette struct {
	Mode       prefs.ThemeMode
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Info       lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Highlight  lipgloss.Color
	Disabled   bool
}

// Status colors do not follow the accent or the theme.
const (
	infoColor    = "#2196F3"
	successColor = "#4CAF50"
	warningColor = "#FF9800"
	errorColor   = "#F44336"
)

// PaletteFromProfile maps a presentation profile onto terminal colors.
func PaletteFromProfile(p prefs.PresentationProfile) Palette {
	return Palette{
		Mode:       p.Mode,
		Primary:    lipgloss.Color(p.Colors.Primary),
		Secondary:  lipgloss.Color(p.Colors.Surface),
		Accent:     lipgloss.Color(p.Colors.Primary),
		Info:       lipgloss.Color(infoColor),
		Success:    lipgloss.Color(successColor),
		Warning:    lipgloss.Color(warningColor),
		Error:      lipgloss.Color(errorColor),
		Muted:      lipgloss.Color(p.Colors.TextSecondary),
		Background: lipgloss.Color(p.Colors.Background),
		Foreground: lipgloss.Color(p.Colors.Text),
		Border:     lipgloss.Color(p.Colors.Border),
		Highlight:  lipgloss.Color(p.Colors.Primary),
	}
}

// DefaultPalette returns the palette of the default preferences.
func DefaultPalette() Palette {
	return PaletteFromProfile(prefs.Derive(prefs.Defaults(), nil))
}

func (p Palette) color(c lipgloss.Color) lipgloss.Color {
	if p.Disabled {
		return lipgloss.Color("")
	}
	return c
}
