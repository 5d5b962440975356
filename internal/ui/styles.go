// Package ui provides Charm-based UI components for prosecraft
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette, replaced by ApplyPalette
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

	// Text styles
	Bold         lipgloss.Style
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Tagline      lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
	HintStyle    lipgloss.Style
	LabelStyle   lipgloss.Style

	// Box styles
	InfoBox  lipgloss.Style
	ErrorBox lipgloss.Style

	TableHeader lipgloss.Style

	// Status indicators
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusPending lipgloss.Style
	StatusError   lipgloss.Style
)

var active Palette

func init() {
	ApplyPalette(DefaultPalette())
}

// ActivePalette returns the palette styles are currently built from.
func ActivePalette() Palette {
	return active
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Tagline = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	MutedStyle = lipgloss.NewStyle().
		Foreground(Muted)

	HintStyle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	LabelStyle = lipgloss.NewStyle().
		Foreground(Foreground).
		Bold(true)

	InfoBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	ErrorBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Error).
		Padding(0, 1)

	TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border)

	StatusSuccess = lipgloss.NewStyle().
		Foreground(Success).
		SetString("✓")

	StatusWarning = lipgloss.NewStyle().
		Foreground(Warning).
		SetString("!")

	StatusPending = lipgloss.NewStyle().
		Foreground(Muted).
		SetString("○")

	StatusError = lipgloss.NewStyle().
		Foreground(Error).
		SetString("✗")
}

// PrimaryStyle renders text in the accent color.
func PrimaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Primary).Bold(true)
}

// Header renders a screen title bar.
func Header(title string) string {
	style := lipgloss.NewStyle().
		Foreground(Background).
		Background(Primary).
		Padding(0, 1).
		Bold(true)
	if active.Disabled {
		style = lipgloss.NewStyle().Bold(true)
	}
	return style.Render(title)
}

// Banner returns the prosecraft ASCII banner
func Banner() string {
	banner := `
 ┏━┓┏━┓┏━┓┏━┓┏━╸┏━╸┏━┓┏━┓┏━╸╺┳╸
 ┣━┛┣┳┛┃ ┃┗━┓┣╸ ┃  ┣┳┛┣━┫┣╸  ┃
 ╹  ╹┗╸┗━┛┗━┛┗━╸┗━╸╹┗╸╹ ╹╹   ╹ `
	return PrimaryStyle().Render(banner)
}

// KeyValue renders an aligned "label  value" line.
func KeyValue(label string, value string, width int) string {
	if width < len(label)+1 {
		width = len(label) + 1
	}
	pad := strings.Repeat(" ", width-len(label))
	return LabelStyle.Render(label) + pad + value
}

// Swatch renders a colored block followed by its hex code.
func Swatch(hex string) string {
	if active.Disabled {
		return hex
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██") + " " + hex
}

// Gap returns the blank lines separating sections at the current density.
func Gap() string {
	return strings.Repeat("\n", CurrentPreferences.Gap)
}
