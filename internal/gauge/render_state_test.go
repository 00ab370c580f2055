package gauge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"obd-dashboard.klederson.com/internal/gauge"
)

func TestSetValueFirstCallAlwaysRedraws(t *testing.T) {
	rs := gauge.NewRenderState(gauge.NewSpec("SPEED", 0, 200, "km/h"))
	assert.False(t, rs.Drawn())

	assert.True(t, rs.SetValue(0))
	assert.True(t, rs.Drawn())
	assert.Equal(t, uint64(1), rs.Frame())
}

func TestSetValueCoalescesSmallChanges(t *testing.T) {
	rs := gauge.NewRenderState(gauge.NewSpec("SPEED", 0, 200, "km/h"))
	rs.SetValue(50)

	assert.False(t, rs.SetValue(50.3))
	assert.Equal(t, 50.0, rs.Displayed())
	assert.Equal(t, uint64(1), rs.Frame())

	assert.False(t, rs.SetValue(50.5), "a change of exactly the threshold is not enough")

	assert.True(t, rs.SetValue(50.6))
	assert.Equal(t, 50.6, rs.Displayed())
	assert.Equal(t, uint64(2), rs.Frame())
}

func TestSetValueComparesAgainstLastDrawnNotLastSeen(t *testing.T) {
	rs := gauge.NewRenderState(gauge.NewSpec("SPEED", 0, 200, "km/h"))
	rs.SetValue(50)

	// Creeping upward in sub-threshold steps still repaints once the drift
	// from the painted value passes the threshold.
	assert.False(t, rs.SetValue(50.3))
	assert.False(t, rs.SetValue(50.45))
	assert.True(t, rs.SetValue(50.55))
	assert.Equal(t, 50.55, rs.Displayed())
}

func TestSetValueClampsBeforeComparing(t *testing.T) {
	rs := gauge.NewRenderState(gauge.NewSpec("THROTTLE", 0, 100, "%"))
	rs.SetValue(100)

	assert.False(t, rs.SetValue(250), "clamped value equals the painted one")
	assert.Equal(t, 100.0, rs.Displayed())

	assert.True(t, rs.SetValue(-5))
	assert.Equal(t, 0.0, rs.Displayed())
}

func TestFrameCountsRedraws(t *testing.T) {
	rs := gauge.NewRenderState(gauge.NewSpec("RPM", 0, 8000, "rpm"))
	assert.Zero(t, rs.Frame())

	rs.SetValue(0)
	rs.SetValue(0.2)
	assert.Equal(t, uint64(1), rs.Frame())

	rs.SetValue(8000)
	assert.Equal(t, uint64(2), rs.Frame())
	assert.Equal(t, -45.0, rs.Geometry().NeedleAngleDeg)
}

func TestGeometryBeforeFirstDraw(t *testing.T) {
	spec := gauge.NewSpec("RPM", 0, 8000, "rpm")
	rs := gauge.NewRenderState(spec)
	assert.Equal(t, gauge.ComputeGeometry(spec, 0), rs.Geometry())

	rs.SetValue(4000)
	assert.InDelta(t, 90, rs.Geometry().NeedleAngleDeg, 1e-9)
}
