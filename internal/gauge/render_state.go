package gauge

import (
	"math"

	"obd-dashboard.klederson.com/internal/config"
)

// RenderState tracks what a gauge last painted. It is not safe for
// concurrent use; only the UI goroutine touches it.
type RenderState struct {
	spec      Spec
	displayed float64
	lastDrawn float64
	drawn     bool
	geometry  Geometry
	frame     uint64
}

// NewRenderState creates an undrawn state for spec.
func NewRenderState(spec Spec) *RenderState {
	return &RenderState{
		spec:      spec,
		displayed: spec.Min,
		lastDrawn: spec.Min,
	}
}

// SetValue clamps raw and repaints only if this is the first value or the
// clamped value moved more than the redraw threshold from the last painted
// one. It reports whether a repaint happened.
func (r *RenderState) SetValue(raw float64) bool {
	v := r.spec.Clamp(raw)
	if r.drawn && math.Abs(v-r.lastDrawn) <= config.RedrawThreshold {
		return false
	}

	r.displayed = v
	r.lastDrawn = v
	r.drawn = true
	r.geometry = ComputeGeometry(r.spec, v)
	r.frame++
	return true
}

// Spec returns the gauge's static description.
func (r *RenderState) Spec() Spec { return r.spec }

// Displayed is the value currently on screen.
func (r *RenderState) Displayed() float64 { return r.displayed }

// Drawn reports whether the gauge has painted at least once.
func (r *RenderState) Drawn() bool { return r.drawn }

// Frame counts accepted redraws. Renderers compare it to decide whether
// a cached picture is stale.
func (r *RenderState) Frame() uint64 { return r.frame }

// Geometry returns the geometry of the last redraw. Before the first redraw
// it describes the minimum.
func (r *RenderState) Geometry() Geometry {
	if !r.drawn {
		return ComputeGeometry(r.spec, r.spec.Min)
	}
	return r.geometry
}
