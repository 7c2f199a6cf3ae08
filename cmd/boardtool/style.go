package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#40a0ff"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#40c040"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d04040"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// styled reports whether stdout is a terminal worth decorating.
func styled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(s lipgloss.Style, text string) string {
	if !styled() {
		return text
	}
	return s.Render(text)
}

// termWidth returns the terminal width, 80 when unknown.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
