package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"obd-dashboard.klederson.com/internal/dashboard"
)

// Bars holds the horizontal meters for engine load and mass air flow.
type Bars struct {
	load progress.Model
	maf  progress.Model
}

// NewBars builds both meters at the given width.
func NewBars(width int) Bars {
	return Bars{
		load: newBar(width),
		maf:  newBar(width),
	}
}

func newBar(width int) progress.Model {
	return progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
}

// Resize returns a copy with both meters set to width.
func (b Bars) Resize(width int) Bars {
	if width < 10 {
		width = 10
	}
	b.load.Width = width
	b.maf.Width = width
	return b
}

// RenderMainReadouts renders engine load, timing, run time and the speed and
// rpm trends under the main gauges.
func RenderMainReadouts(r dashboard.Readouts, speed, rpm []float64, bars Bars, width int) string {
	innerW := max(20, width-4)
	lines := []string{
		StyleValue.Render(r.EngineLoad),
		"  " + bars.load.ViewAs(r.EngineLoadRatio),
		field("Timing advance", r.TimingAdvance),
		field("Engine run time", r.Runtime),
		separator(innerW),
		StyleLabel.Render("  Speed trend"),
		"  " + StyleSpark.Render(renderSparkline(speed, innerW-4)),
		StyleLabel.Render("  RPM trend"),
		"  " + StyleSpark.Render(renderSparkline(rpm, innerW-4)),
	}
	return StylePanelBorder.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// RenderAirReadouts renders the mass air flow meter under the fuel gauges.
func RenderAirReadouts(r dashboard.Readouts, bars Bars, width int) string {
	lines := []string{
		StyleValue.Render(r.MAF),
		"  " + bars.maf.ViewAs(r.MAFRatio),
		field("Max MAF", r.MaxMAF),
	}
	return StylePanelBorder.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// RenderDiagnostics renders the trouble code page: counters since the last
// clear, the last report read and the actions available.
func RenderDiagnostics(r dashboard.Readouts, report string, width, height int) string {
	innerW := max(20, width-4)
	title := StylePanelTitle.Render("DIAGNOSTICS")

	lines := []string{
		title,
		separator(innerW),
		"",
		field("Distance since clear", r.DistanceSinceClear),
		field("Time since clear", r.TimeSinceClear),
		field("Engine run time", r.Runtime),
		"",
		separator(innerW),
	}
	if report == "" {
		lines = append(lines, StyleHelp.Render("  No trouble code read yet."))
	} else {
		for _, l := range strings.Split(report, "\n") {
			lines = append(lines, "  "+StyleValue.Render(l))
		}
	}
	lines = append(lines, "",
		StyleMenuKey.Render("  [g]")+StyleMenuLabel.Render(" read trouble codes")+
			StyleMenuKey.Render("   [c]")+StyleMenuLabel.Render(" clear trouble codes"))

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	return StyleLabel.Render(fmt.Sprintf("  %-22s", label)) + StyleValue.Render(value)
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}
