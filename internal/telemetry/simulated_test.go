package telemetry_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"obd-dashboard.klederson.com/internal/telemetry"
)

func TestSimulatedSampleWithinBounds(t *testing.T) {
	src := telemetry.NewSimulated(rand.New(rand.NewSource(1)))
	ctx := context.Background()

	bounds := map[telemetry.Metric][2]float64{
		telemetry.Speed:          {0, 180},
		telemetry.RPM:            {800, 7000},
		telemetry.Throttle:       {0, 100},
		telemetry.EngineLoad:     {10, 95},
		telemetry.TimingAdvance:  {-10, 45},
		telemetry.CoolantTemp:    {70, 105},
		telemetry.IntakeTemp:     {15, 45},
		telemetry.OilTemp:        {80, 120},
		telemetry.FuelPressure:   {250, 550},
		telemetry.FuelRate:       {0.5, 25},
		telemetry.IntakePressure: {30, 120},
		telemetry.MAF:            {2, 95},
	}
	integers := []telemetry.Metric{
		telemetry.Speed, telemetry.RPM, telemetry.Throttle, telemetry.EngineLoad,
		telemetry.CoolantTemp, telemetry.IntakeTemp, telemetry.OilTemp,
		telemetry.FuelPressure, telemetry.IntakePressure,
	}

	for i := 0; i < 500; i++ {
		snap := src.Sample(ctx)
		assert.Equal(t, 255.0, snap.Values[telemetry.MaxMAF])
		assert.Zero(t, snap.Failures)

		for m, b := range bounds {
			v, ok := snap.Value(m)
			require.True(t, ok, m)
			assert.GreaterOrEqual(t, v, b[0], m)
			assert.LessOrEqual(t, v, b[1], m)
		}
		for _, m := range integers {
			assert.Equal(t, math.Trunc(snap.Values[m]), snap.Values[m], m)
		}
	}
}

func TestSimulatedCounters(t *testing.T) {
	src := telemetry.NewSimulated(rand.New(rand.NewSource(2)))

	for i := 0; i < 100; i++ {
		c := src.Sample(context.Background()).Counters

		assert.Equal(t, telemetry.CounterUpdate{Kind: telemetry.Increment, Value: 0.1}, c.Runtime)
		assert.Equal(t, telemetry.CounterUpdate{Kind: telemetry.Increment, Value: 0.1}, c.TimeSinceClear)
		assert.Equal(t, telemetry.Increment, c.Distance.Kind)
		assert.GreaterOrEqual(t, c.Distance.Value, 0.01)
		assert.LessOrEqual(t, c.Distance.Value, 0.05)
	}
}

func TestSimulatedTroubleCodes(t *testing.T) {
	src := telemetry.NewSimulated(rand.New(rand.NewSource(3)))
	pool := map[string]bool{"P0420": true, "P0171": true, "P0101": true, "P0300": true, "C0035": true}
	sizes := map[int]bool{}

	for i := 0; i < 200; i++ {
		codes, err := src.TroubleCodes(context.Background())
		require.NoError(t, err)
		require.LessOrEqual(t, len(codes), 3)
		sizes[len(codes)] = true

		seen := map[string]bool{}
		for _, c := range codes {
			assert.True(t, pool[c.Code], "unexpected code %s", c.Code)
			assert.False(t, seen[c.Code], "duplicate code %s", c.Code)
			assert.NotEmpty(t, c.Description)
			seen[c.Code] = true
		}
	}

	assert.Len(t, sizes, 4, "every subset size 0..3 should occur in 200 draws")
}

func TestSimulatedLifecycle(t *testing.T) {
	src := telemetry.NewSimulated(nil)
	assert.Equal(t, telemetry.ModeSimulated, src.Mode())
	assert.True(t, src.Connected())
	assert.NoError(t, src.ClearTroubleCodes(context.Background()))
	assert.NoError(t, src.Close())
}

func TestTroubleCodeString(t *testing.T) {
	assert.Equal(t, "P0420 - Catalyst", telemetry.TroubleCode{Code: "P0420", Description: "Catalyst"}.String())
	assert.Equal(t, "P1ABC", telemetry.TroubleCode{Code: "P1ABC"}.String())
}
