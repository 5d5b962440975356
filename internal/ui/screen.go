package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

const defaultTerminalWidth = 80

func StartScreen(title string, subtitle string) {
	ClearScreen()
	if CurrentPreferences.ShowBanner {
		fmt.Println(Banner())
	}
	fmt.Println(Header(title))
	if subtitle != "" {
		fmt.Println(Tagline.Render(subtitle))
	}
	fmt.Print(Gap())
}

func ClearScreen() {
	if !IsInteractiveTerminal() {
		return
	}
	fmt.Print("\033[2J\033[H")
}

func IsInteractiveTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return false
	}
	if os.Getenv("TERM") == "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func terminalWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// Paragraph wraps text at the current wrap width, narrower on small terminals.
func Paragraph(text string) string {
	width := CurrentPreferences.WrapWidth
	if tw := terminalWidth() - 2; tw > 0 && tw < width {
		width = tw
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// Frame renders a full-screen TUI layout.
func Frame(title string, subtitle string, body string, footer string) string {
	parts := make([]string, 0, 7)
	parts = append(parts, Header(title))
	if subtitle != "" {
		parts = append(parts, Tagline.Render(subtitle))
	}
	for i := 0; i < CurrentPreferences.Gap; i++ {
		parts = append(parts, "")
	}
	parts = append(parts, body)
	if footer != "" {
		parts = append(parts, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
