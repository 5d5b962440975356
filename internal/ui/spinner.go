package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerModel shows progress while an analysis request is in flight.
type SpinnerModel struct {
	spinner  spinner.Model
	message  string
	cancel   context.CancelFunc
	quitting bool
	err      error
}

// NewSpinner creates a new spinner with a message. Pressing q or ctrl+c
// calls cancel.
func NewSpinner(message string, cancel context.CancelFunc) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(Primary)
	return SpinnerModel{
		spinner: s,
		message: message,
		cancel:  cancel,
	}
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case errMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.quitting {
		if m.err != nil {
			return ErrorStyle.Render("✗ "+m.message+" failed") + "\n"
		}
		return SuccessStyle.Render("✓ "+m.message) + "\n"
	}
	return m.spinner.View() + " " + m.message + MutedStyle.Render("  (q to cancel)") + "\n"
}

type errMsg struct{ err error }
type doneMsg struct{}

// RunWithSpinner runs fn while showing a spinner. Off a terminal it prints a
// single progress line to stderr instead.
func RunWithSpinner(ctx context.Context, message string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !IsInteractiveTerminal() {
		fmt.Fprintf(os.Stderr, "… %s\n", message)
		start := time.Now()
		err := fn(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s failed (%s)\n", message, time.Since(start).Round(time.Millisecond))
		}
		return err
	}

	m := NewSpinner(message, cancel)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	errChan := make(chan error, 1)
	go func() {
		err := fn(ctx)
		errChan <- err
		if err != nil {
			p.Send(errMsg{err})
		} else {
			p.Send(doneMsg{})
		}
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errChan
		return fmt.Errorf("spinner error: %w", err)
	}

	return <-errChan
}
