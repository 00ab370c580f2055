package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/dashboard"
	"obd-dashboard.klederson.com/internal/dial"
	"obd-dashboard.klederson.com/internal/logger"
	"obd-dashboard.klederson.com/internal/refresh"
	"obd-dashboard.klederson.com/internal/telemetry"
	"obd-dashboard.klederson.com/internal/ui"
)

// actionTimeout bounds a trouble code read or clear.
const actionTimeout = 10 * time.Second

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	dash    *dashboard.Dashboard
	painter *dial.Painter
	source  telemetry.Source
	loop    *refresh.Loop

	// bound to the clear confirmation form
	confirmed bool
}

// AppModel is the root Bubble Tea model for the dashboard.
type AppModel struct {
	width  int
	height int

	page      dashboard.Page
	notice    string
	noticeErr bool
	report    string
	busy      bool

	confirm *huh.Form
	bars    ui.Bars
	help    help.Model

	shared *shared
}

// New creates a new AppModel reading from source every interval.
func New(source telemetry.Source, interval time.Duration) AppModel {
	return AppModel{
		bars: ui.NewBars(30),
		help: help.New(),
		shared: &shared{
			dash:    dashboard.New(),
			painter: dial.NewPainter(),
			source:  source,
			loop:    refresh.New(source, interval),
		},
	}
}

// WithNotice returns a copy that opens with a notice, such as a fallback to
// simulated data at startup.
func (m AppModel) WithNotice(text string, isErr bool) AppModel {
	m.notice = text
	m.noticeErr = isErr
	return m
}

// Title is the terminal window title, which carries the data mode.
func (m AppModel) Title() string {
	return fmt.Sprintf("%s v%s - %s", config.AppName, config.AppVersion, m.shared.source.Mode())
}

func (m AppModel) Init() tea.Cmd {
	return tea.SetWindowTitle(m.Title())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bars = m.bars.Resize(m.width/2 - 8)
		return m, nil

	case SnapshotMsg:
		refresh.Guard("apply", func() { m.shared.dash.Apply(msg.Snapshot) })
		return m, nil

	case TroubleCodesMsg:
		m.busy = false
		if msg.Err != nil {
			logger.WarnWithCode(msg.Err).Msg("trouble code read failed")
			m.notice, m.noticeErr = msg.Err.Error(), true
			return m, nil
		}
		m.report = dashboard.TroubleCodeReport(msg.Codes)
		m.notice, m.noticeErr = m.report, len(msg.Codes) > 0
		logger.Info().Int("count", len(msg.Codes)).Msg("trouble codes read")
		return m, nil

	case ClearedMsg:
		m.busy = false
		if msg.Err != nil {
			logger.WarnWithCode(msg.Err).Msg("trouble code clear failed")
		} else {
			logger.Info().Msg("trouble codes cleared")
		}
		m.notice = m.shared.dash.TroubleCodesCleared(msg.Err)
		m.noticeErr = msg.Err != nil
		m.report = ""
		return m, nil
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if m.notice != "" {
		if key.Matches(msg, keys.Dismiss) {
			m.notice, m.noticeErr = "", false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.NextPage):
		m.page = m.page.Next()

	case key.Matches(msg, keys.GotoPage):
		m.page = dashboard.Page(msg.String()[0] - '1')

	case key.Matches(msg, keys.ReadCodes):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, readCodesCmd(m.shared.source)

	case key.Matches(msg, keys.Clear):
		if m.busy {
			return m, nil
		}
		m.confirm = newClearForm(&m.shared.confirmed)
		return m, m.confirm.Init()
	}

	return m, nil
}

func (m AppModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Cancel) {
		m.confirm = nil
		return m, nil
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		m.confirm = nil
		if !m.shared.confirmed {
			return m, nil
		}
		m.busy = true
		return m, clearCmd(m.shared.source)
	case huh.StateAborted:
		m.confirm = nil
		return m, nil
	}
	return m, cmd
}

func newClearForm(confirmed *bool) *huh.Form {
	*confirmed = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all trouble codes?").
				Description("This resets:\n- all trouble codes\n- distance since clear\n- time since clear").
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	).WithShowHelp(false)
}

// StartRefresh starts the background refresh loop. Every snapshot is handed
// to the program with p.Send, so state is only mutated inside Update.
func (m *AppModel) StartRefresh(p *tea.Program) {
	m.shared.loop.Start(func(snap telemetry.Snapshot) {
		p.Send(SnapshotMsg{Snapshot: snap})
	})
}

// Stop halts the refresh loop. Call it after the program has exited.
func (m *AppModel) Stop() {
	m.shared.loop.Stop()
}

func readCodesCmd(src telemetry.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		codes, err := src.TroubleCodes(ctx)
		return TroubleCodesMsg{Codes: codes, Err: err}
	}
}

func clearCmd(src telemetry.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return ClearedMsg{Err: src.ClearTroubleCodes(ctx)}
	}
}
