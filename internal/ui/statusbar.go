package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"obd-dashboard.klederson.com/internal/telemetry"
)

// Status is what the bottom bar reports about the data source.
type Status struct {
	Mode      telemetry.Mode
	Connected bool
	Samples   int
	Failures  int
	Interval  time.Duration
	Runtime   string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	label := "[OFFLINE]"
	switch {
	case s.Mode == telemetry.ModeSimulated:
		label = "[SIMULATED]"
	case s.Connected:
		label = "[CONNECTED]"
	}
	state := modeStyle(s.Mode, s.Connected).Render(label)

	info := fmt.Sprintf(" Samples: %d  Failed reads: %d  Refresh: %s  Engine: %s",
		s.Samples, s.Failures, s.Interval, s.Runtime)

	content := state + StyleStatusBar.Foreground(ColorGreen).Render(info)
	return StyleStatusBar.Width(width).Render(fill(width-2, content, ""))
}

func modeStyle(mode telemetry.Mode, connected bool) lipgloss.Style {
	switch {
	case mode == telemetry.ModeSimulated:
		return StyleStatusSimulated
	case connected:
		return StyleStatusLive
	default:
		return StyleStatusOffline
	}
}
