package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"obd-dashboard.klederson.com/internal/dashboard"
	"obd-dashboard.klederson.com/internal/telemetry"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "", renderSparkline(nil, 10))
	assert.Equal(t, "_^", renderSparkline([]float64{0, 100}, 10))
	assert.Equal(t, "___", renderSparkline([]float64{5, 5, 5}, 10))

	// Only the newest width values are drawn, scaled among themselves.
	assert.Equal(t, "_-^", renderSparkline([]float64{1000, 0, 50, 100}, 3))
}

func TestRenderMenuBarShowsPagesAndMode(t *testing.T) {
	out := RenderMenuBar(120, dashboard.PageFuelAir, telemetry.ModeLive)
	for _, p := range dashboard.Pages() {
		assert.Contains(t, out, p.String())
	}
	assert.Contains(t, out, "Live OBD")
	assert.Contains(t, out, "OBD-DASH")
	assert.Equal(t, 120, lipgloss.Width(out))
}

func TestRenderStatusBarModes(t *testing.T) {
	sim := RenderStatusBar(100, Status{Mode: telemetry.ModeSimulated, Samples: 3, Interval: 100 * time.Millisecond, Runtime: "00:00:01"})
	assert.Contains(t, sim, "[SIMULATED]")
	assert.Contains(t, sim, "Samples: 3")
	assert.Contains(t, sim, "100ms")

	live := RenderStatusBar(100, Status{Mode: telemetry.ModeLive, Connected: true})
	assert.Contains(t, live, "[CONNECTED]")

	lost := RenderStatusBar(100, Status{Mode: telemetry.ModeLive, Failures: 4})
	assert.Contains(t, lost, "[OFFLINE]")
	assert.Contains(t, lost, "Failed reads: 4")
}

func TestRenderGaugePanelKeepsSize(t *testing.T) {
	w, h := 30, 14
	fw, fh := GaugeFaceSize(w, h)
	face := strings.Repeat(strings.Repeat("x", fw)+"\n", fh-1) + strings.Repeat("x", fw)

	out := RenderGaugePanel("SPEED", face, w, h)
	assert.Contains(t, out, "SPEED")
	assert.Equal(t, w, lipgloss.Width(out))
	assert.Equal(t, h, lipgloss.Height(out))
}

func TestRenderDiagnostics(t *testing.T) {
	r := dashboard.Readouts{DistanceSinceClear: "12.0 km", TimeSinceClear: "00:10:00", Runtime: "01:00:00"}

	empty := RenderDiagnostics(r, "", 60, 20)
	assert.Contains(t, empty, "12.0 km")
	assert.Contains(t, empty, "00:10:00")
	assert.Contains(t, empty, "No trouble code read yet.")

	report := dashboard.TroubleCodeReport([]telemetry.TroubleCode{{Code: "P0420"}})
	out := RenderDiagnostics(r, report, 60, 20)
	assert.Contains(t, out, "P0420")
	assert.NotContains(t, out, "No trouble code read yet.")
}

func TestRenderReadouts(t *testing.T) {
	bars := NewBars(20).Resize(30)
	r := dashboard.Readouts{
		EngineLoad:    "ENGINE LOAD: 42%",
		TimingAdvance: "12.5°",
		Runtime:       "00:01:00",
		MAF:           "MAF (Mass Air Flow): 80.0 g/s",
		MAFRatio:      0.3,
		MaxMAF:        "255.0 g/s",
	}

	main := RenderMainReadouts(r, []float64{1, 2, 3}, []float64{3, 2, 1}, bars, 60)
	assert.Contains(t, main, "ENGINE LOAD: 42%")
	assert.Contains(t, main, "12.5°")
	assert.Contains(t, main, "Speed trend")

	air := RenderAirReadouts(r, bars, 60)
	assert.Contains(t, air, "MAF (Mass Air Flow): 80.0 g/s")
	assert.Contains(t, air, "255.0 g/s")
}

func TestRenderNotice(t *testing.T) {
	out := RenderNotice("All diagnostic trouble codes cleared.", false, 80, 20)
	assert.Contains(t, out, "All diagnostic trouble codes cleared.")
	assert.Equal(t, 20, lipgloss.Height(out))
}
