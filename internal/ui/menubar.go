package ui

import (
	"fmt"

	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/dashboard"
	"obd-dashboard.klederson.com/internal/telemetry"
)

// RenderMenuBar renders the top bar: title, page tabs and the data mode.
func RenderMenuBar(width int, page dashboard.Page, mode telemetry.Mode) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	tabs := ""
	for i, p := range dashboard.Pages() {
		label := fmt.Sprintf(" %d %s ", i+1, p)
		if p == page {
			tabs += " " + StyleTabActive.Render(label)
		} else {
			tabs += " " + StyleTabInactive.Render(label)
		}
	}

	left := StyleMenuKey.Render(title) + tabs
	right := modeStyle(mode, true).Render(mode.String()) + " "

	return StyleMenuBar.Width(width).Render(fill(width-2, left, right))
}
