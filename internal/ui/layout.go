package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout stacks the menu bar, page body, help line and status bar.
func ComposeLayout(menuBar, body, helpLine, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, helpLine, statusBar)
}

// Row joins panels side by side.
func Row(panels ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

// Column stacks panels.
func Column(panels ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func fill(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}
