package window

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"obd-dashboard.klederson.com/internal/dashboard"
	"obd-dashboard.klederson.com/internal/errors"
	"obd-dashboard.klederson.com/internal/telemetry"
)

type stubSource struct {
	*telemetry.Simulated
	codes    []telemetry.TroubleCode
	codesErr error
	clearErr error
	clears   atomic.Int32
}

func newStub() *stubSource {
	return &stubSource{Simulated: telemetry.NewSimulated(rand.New(rand.NewSource(7)))}
}

func (s *stubSource) TroubleCodes(context.Context) ([]telemetry.TroubleCode, error) {
	return s.codes, s.codesErr
}

func (s *stubSource) ClearTroubleCodes(context.Context) error {
	s.clears.Add(1)
	return s.clearErr
}

func pollUntil(t *testing.T, c *Controller, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.Poll()
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

func TestRefreshFeedsDashboard(t *testing.T) {
	c := New(newStub(), 10*time.Millisecond)
	c.Start()
	defer c.Stop()

	pollUntil(t, c, func() bool { return c.Dash.State.Samples() >= 3 })
	assert.True(t, c.Dash.Gauge(telemetry.Speed).Drawn())
	assert.Greater(t, c.Dash.State.RuntimeSeconds, 0.0)
}

func TestPollRecoversFromApplyPanic(t *testing.T) {
	c := New(newStub(), time.Hour)
	dash := c.Dash
	snap := telemetry.Snapshot{At: time.Now(), Values: map[telemetry.Metric]float64{telemetry.Speed: 40}}

	c.Dash = nil
	c.snaps <- snap
	n := 0
	assert.NotPanics(t, func() { n = c.Poll() })
	assert.Zero(t, n)

	c.Dash = dash
	c.snaps <- snap
	assert.Equal(t, 1, c.Poll())
	assert.Equal(t, 1, dash.State.Samples())
}

func TestStopIsIdempotentWithFullBuffer(t *testing.T) {
	c := New(newStub(), time.Millisecond)
	c.Start()

	// Nobody polls, so the buffer fills and the loop blocks on post.
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		c.Stop()
		c.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stop blocked")
	}
}

func TestPaging(t *testing.T) {
	c := New(newStub(), time.Second)
	assert.Equal(t, dashboard.PageMain, c.Page())

	c.NextPage()
	c.NextPage()
	assert.Equal(t, dashboard.PageFuelAir, c.Page())

	c.GotoPage(dashboard.PageDiagnostics)
	c.NextPage()
	assert.Equal(t, dashboard.PageMain, c.Page())

	c.GotoPage(dashboard.Page(9))
	assert.Equal(t, dashboard.PageMain, c.Page())
}

func TestReadCodes(t *testing.T) {
	src := newStub()
	src.codes = []telemetry.TroubleCode{{Code: "P0300", Description: "Random/multiple cylinder misfire detected"}}
	c := New(src, time.Second)

	c.ReadCodes()
	assert.True(t, c.Busy())
	pollUntil(t, c, func() bool { return !c.Busy() })

	text, isErr := c.Banner()
	assert.True(t, isErr)
	assert.Contains(t, text, "P0300 - Random/multiple cylinder misfire detected")
	assert.Equal(t, text, c.Report())

	c.Cancel()
	text, _ = c.Banner()
	assert.Empty(t, text)
}

func TestClearNeedsConfirmation(t *testing.T) {
	src := newStub()
	c := New(src, time.Second)
	c.Dash.State.DistanceSinceClear = 40
	c.Dash.State.RuntimeSeconds = 5000

	c.RequestClear()
	assert.True(t, c.Confirming())
	text, _ := c.Banner()
	assert.Equal(t, confirmPrompt, text)

	c.Cancel()
	assert.False(t, c.Confirming())
	assert.Zero(t, src.clears.Load())

	c.RequestClear()
	c.Confirm()
	pollUntil(t, c, func() bool { return !c.Busy() })

	assert.Equal(t, int32(1), src.clears.Load())
	assert.Zero(t, c.Dash.State.DistanceSinceClear)
	assert.InDelta(t, 5000, c.Dash.State.RuntimeSeconds, 1e-9)
	text, isErr := c.Banner()
	assert.False(t, isErr)
	assert.Equal(t, "All diagnostic trouble codes cleared.", text)
}

func TestFailedClearStillResets(t *testing.T) {
	src := newStub()
	src.clearErr = errors.New(errors.ErrTroubleCodeAction)
	c := New(src, time.Second)
	c.Dash.State.TimeSinceClear = 90

	c.RequestClear()
	c.Confirm()
	pollUntil(t, c, func() bool { return !c.Busy() })

	assert.Zero(t, c.Dash.State.TimeSinceClear)
	_, isErr := c.Banner()
	assert.True(t, isErr)
}

func TestConfirmWithoutRequestIsIgnored(t *testing.T) {
	src := newStub()
	c := New(src, time.Second)
	c.Confirm()
	assert.False(t, c.Busy())
	assert.Zero(t, src.clears.Load())
}

func TestTitleShowsMode(t *testing.T) {
	c := New(newStub(), time.Second)
	require.Equal(t, "OBD Dashboard - Simulation", c.Title())
}
