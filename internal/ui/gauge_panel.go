package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderGaugePanel wraps a dial face with a titled border. The face itself is
// painted by the dial package to avoid import cycles.
func RenderGaugePanel(title, face string, width, height int) string {
	innerW := width - 2
	if innerW < 1 {
		innerW = 1
	}
	head := lipgloss.PlaceHorizontal(innerW, lipgloss.Center, StylePanelTitle.Render(title))
	body := lipgloss.Place(innerW, max(1, height-3), lipgloss.Center, lipgloss.Center, face)
	return StylePanelBorder.Width(innerW).Height(height - 2).Render(head + "\n" + body)
}

// GaugeFaceSize is the dial area left inside a gauge panel.
func GaugeFaceSize(width, height int) (int, int) {
	return max(0, width-4), max(0, height-4)
}

func separator(width int) string {
	return StyleSeparator.Render(strings.Repeat("-", max(0, width)))
}
