// Package dashboard is the UI-side aggregate: cumulative counters, one
// render state per gauge, trend history and the derived text every page
// shows. Everything here runs on the UI goroutine.
package dashboard

import (
	"fmt"

	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/gauge"
	"obd-dashboard.klederson.com/internal/telemetry"
)

// Readouts is the non-gauge text of all pages, recomputed on every apply.
type Readouts struct {
	EngineLoad         string
	EngineLoadRatio    float64
	TimingAdvance      string
	Runtime            string
	MAF                string
	MAFRatio           float64
	MaxMAF             string
	DistanceSinceClear string
	TimeSinceClear     string
}

// Dashboard owns the state and the gauges.
type Dashboard struct {
	State State

	gauges   map[telemetry.Metric]*gauge.RenderState
	order    []telemetry.Metric
	speed    *Ring
	rpm      *Ring
	readouts Readouts
}

// New builds every gauge of every page.
func New() *Dashboard {
	d := &Dashboard{
		gauges: make(map[telemetry.Metric]*gauge.RenderState),
		speed:  NewRing(config.HistoryLength),
		rpm:    NewRing(config.HistoryLength),
	}
	for _, p := range Pages() {
		for _, def := range p.Gauges() {
			d.gauges[def.Metric] = gauge.NewRenderState(def.Spec)
			d.order = append(d.order, def.Metric)
		}
	}
	d.refreshReadouts()
	return d
}

// Apply merges one snapshot and pushes each reading into its gauge. It
// returns how many gauges accepted a redraw.
func (d *Dashboard) Apply(snap telemetry.Snapshot) int {
	d.State.Merge(snap)

	redrawn := 0
	for _, m := range d.order {
		v, ok := snap.Value(m)
		if !ok {
			continue
		}
		if d.gauges[m].SetValue(v) {
			redrawn++
		}
	}

	d.speed.Push(d.State.Value(telemetry.Speed))
	d.rpm.Push(d.State.Value(telemetry.RPM))
	d.refreshReadouts()
	return redrawn
}

func (d *Dashboard) refreshReadouts() {
	s := &d.State
	load := s.Value(telemetry.EngineLoad)
	maf := s.Value(telemetry.MAF)
	maxMAF := s.Value(telemetry.MaxMAF)

	mafRatio := 0.0
	if maxMAF > 0 {
		mafRatio = gauge.Clamp(maf/maxMAF, 0, 1)
	}

	d.readouts = Readouts{
		EngineLoad:         fmt.Sprintf("ENGINE LOAD: %d%%", int(load)),
		EngineLoadRatio:    gauge.Clamp(load/100, 0, 1),
		TimingAdvance:      fmt.Sprintf("%.1f°", s.Value(telemetry.TimingAdvance)),
		Runtime:            FormatClock(s.RuntimeSeconds),
		MAF:                fmt.Sprintf("MAF (Mass Air Flow): %.1f g/s", maf),
		MAFRatio:           mafRatio,
		MaxMAF:             fmt.Sprintf("%.1f g/s", maxMAF),
		DistanceSinceClear: fmt.Sprintf("%.1f km", s.DistanceSinceClear),
		TimeSinceClear:     FormatClock(s.TimeSinceClear),
	}
}

// Gauge returns the render state bound to m, or nil.
func (d *Dashboard) Gauge(m telemetry.Metric) *gauge.RenderState {
	return d.gauges[m]
}

// Readouts returns the derived text from the last apply.
func (d *Dashboard) Readouts() Readouts { return d.readouts }

// SpeedHistory returns recent speeds, oldest first.
func (d *Dashboard) SpeedHistory() []float64 { return d.speed.Values() }

// RPMHistory returns recent engine speeds, oldest first.
func (d *Dashboard) RPMHistory() []float64 { return d.rpm.Values() }

// TroubleCodesCleared records the outcome of a clear request. The local
// distance and time counters are reset whether or not the vehicle accepted
// the request. The returned text is the notice to show.
func (d *Dashboard) TroubleCodesCleared(err error) string {
	d.State.ResetTroubleCodeCounters()
	d.refreshReadouts()
	if err != nil {
		return err.Error()
	}
	return clearedNotice
}
