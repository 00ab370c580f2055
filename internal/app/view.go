package app

import (
	"github.com/charmbracelet/lipgloss"
	"obd-dashboard.klederson.com/internal/dashboard"
	"obd-dashboard.klederson.com/internal/ui"
)

const minGaugeHeight = 7

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing OBD dashboard..."
	}

	menuBar := ui.RenderMenuBar(m.width, m.page, m.shared.source.Mode())

	dash := m.shared.dash
	helpLine := ui.StyleHelp.Render(" ") + m.help.ShortHelpView(keys.ShortHelp())
	if m.busy {
		helpLine += ui.StyleStatusSimulated.Render("  waiting for adapter...")
	}

	statusBar := ui.RenderStatusBar(m.width, ui.Status{
		Mode:      m.shared.source.Mode(),
		Connected: m.shared.source.Connected(),
		Samples:   dash.State.Samples(),
		Failures:  dash.State.Latest().Failures,
		Interval:  m.shared.loop.Interval(),
		Runtime:   dash.Readouts().Runtime,
	})

	bodyH := m.height - lipgloss.Height(menuBar) - lipgloss.Height(statusBar) - 1
	if bodyH < minGaugeHeight {
		bodyH = minGaugeHeight
	}

	var body string
	switch {
	case m.confirm != nil:
		body = ui.RenderDialog(m.confirm.View(), m.width, bodyH)
	case m.notice != "":
		body = ui.RenderNotice(m.notice, m.noticeErr, m.width, bodyH)
	default:
		body = m.renderPage(bodyH)
	}

	return ui.ComposeLayout(menuBar, body, helpLine, statusBar)
}

func (m AppModel) renderPage(height int) string {
	dash := m.shared.dash
	r := dash.Readouts()

	var extra string
	switch m.page {
	case dashboard.PageDiagnostics:
		return ui.RenderDiagnostics(r, m.report, m.width, height)
	case dashboard.PageMain:
		extra = ui.RenderMainReadouts(r, dash.SpeedHistory(), dash.RPMHistory(), m.bars, m.width)
	case dashboard.PageFuelAir:
		extra = ui.RenderAirReadouts(r, m.bars, m.width)
	}

	gaugeH := height
	if extra != "" {
		gaugeH -= lipgloss.Height(extra)
	}
	if gaugeH < minGaugeHeight {
		gaugeH = minGaugeHeight
	}

	defs := m.page.Gauges()
	panels := make([]string, 0, len(defs))
	used := 0
	for i, def := range defs {
		w := m.width / len(defs)
		if i == len(defs)-1 {
			w = m.width - used
		}
		used += w

		fw, fh := ui.GaugeFaceSize(w, gaugeH)
		face := m.shared.painter.Paint(dash.Gauge(def.Metric), fw, fh)
		panels = append(panels, ui.RenderGaugePanel(def.Spec.Title, face, w, gaugeH))
	}

	row := ui.Row(panels...)
	if extra == "" {
		return row
	}
	return ui.Column(row, extra)
}
