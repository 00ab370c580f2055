package dashboard_test

import (
	"context"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"obd-dashboard.klederson.com/internal/dashboard"
	"obd-dashboard.klederson.com/internal/errors"
	"obd-dashboard.klederson.com/internal/obd"
	"obd-dashboard.klederson.com/internal/telemetry"
)

// scriptedQuerier returns values by command name; unknown names are NO DATA.
type scriptedQuerier struct {
	values    map[string]float64
	failClear bool
}

func (q *scriptedQuerier) Query(_ context.Context, cmd *obd.Command) (obd.Response, error) {
	if cmd.Kind == obd.KindClearTroubleCodes {
		if q.failClear {
			return obd.Response{Command: cmd, Null: true}, io.ErrClosedPipe
		}
		return obd.Response{Command: cmd}, nil
	}
	v, ok := q.values[cmd.Name]
	if !ok {
		return obd.Response{Command: cmd, Null: true}, nil
	}
	return obd.Response{Command: cmd, Value: v}, nil
}

func (q *scriptedQuerier) Connected() bool { return true }
func (q *scriptedQuerier) Close() error    { return nil }

func TestLiveDistanceNeverRegresses(t *testing.T) {
	q := &scriptedQuerier{values: map[string]float64{}}
	src := telemetry.NewLive(q, obd.DefaultCatalog(), rand.New(rand.NewSource(1)))
	d := dashboard.New()

	var got []float64
	for _, v := range []float64{12.0, 0, -1, 15.0} {
		q.values["DISTANCE_SINCE_DTC_CLEAR"] = v
		d.Apply(src.Sample(context.Background()))
		got = append(got, d.State.DistanceSinceClear)
	}

	assert.Equal(t, []float64{12, 12, 12, 15}, got)
}

func TestLiveRuntimeMissingReadKeepsAccumulated(t *testing.T) {
	q := &scriptedQuerier{values: map[string]float64{"RUN_TIME": 300}}
	src := telemetry.NewLive(q, obd.DefaultCatalog(), nil)
	d := dashboard.New()

	d.Apply(src.Sample(context.Background()))
	delete(q.values, "RUN_TIME")
	d.Apply(src.Sample(context.Background()))

	assert.Equal(t, 300.0, d.State.RuntimeSeconds)
	assert.Equal(t, "00:05:00", d.Readouts().Runtime)
}

func TestSimulatedCountersAdvance(t *testing.T) {
	src := telemetry.NewSimulated(rand.New(rand.NewSource(9)))
	d := dashboard.New()

	for i := 0; i < 10; i++ {
		d.Apply(src.Sample(context.Background()))
	}

	assert.InDelta(t, 1.0, d.State.RuntimeSeconds, 1e-9)
	assert.InDelta(t, 1.0, d.State.TimeSinceClear, 1e-9)
	assert.GreaterOrEqual(t, d.State.DistanceSinceClear, 0.1)
	assert.LessOrEqual(t, d.State.DistanceSinceClear, 0.5)
	assert.Equal(t, 10, d.State.Samples())
}

func TestClearResetsDistanceAndTimeOnly(t *testing.T) {
	d := dashboard.New()
	d.State.DistanceSinceClear = 42.3
	d.State.TimeSinceClear = 7200
	d.State.RuntimeSeconds = 5000

	err := telemetry.NewSimulated(nil).ClearTroubleCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "All diagnostic trouble codes cleared.", d.TroubleCodesCleared(err))

	assert.Zero(t, d.State.DistanceSinceClear)
	assert.Zero(t, d.State.TimeSinceClear)
	assert.Equal(t, 5000.0, d.State.RuntimeSeconds)
	assert.Equal(t, "0.0 km", d.Readouts().DistanceSinceClear)
	assert.Equal(t, "00:00:00", d.Readouts().TimeSinceClear)
}

func TestFailedLiveClearStillResetsCounters(t *testing.T) {
	q := &scriptedQuerier{values: map[string]float64{}, failClear: true}
	src := telemetry.NewLive(q, obd.DefaultCatalog(), nil)

	d := dashboard.New()
	d.State.DistanceSinceClear = 42.3
	d.State.TimeSinceClear = 7200
	d.State.RuntimeSeconds = 5000

	err := src.ClearTroubleCodes(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTroubleCodeAction))
	assert.Equal(t, err.Error(), d.TroubleCodesCleared(err))

	assert.Zero(t, d.State.DistanceSinceClear)
	assert.Zero(t, d.State.TimeSinceClear)
	assert.Equal(t, 5000.0, d.State.RuntimeSeconds)
}

func TestTroubleCodesClearedNotice(t *testing.T) {
	d := dashboard.New()
	assert.Equal(t, "All diagnostic trouble codes cleared.", d.TroubleCodesCleared(nil))
	assert.Equal(t, "boom", d.TroubleCodesCleared(errors.Newf(errors.ErrTroubleCodeAction, "boom")))
}

func TestApplyPushesGauges(t *testing.T) {
	d := dashboard.New()
	snap := telemetry.Snapshot{Values: map[telemetry.Metric]float64{
		telemetry.Speed:         250,
		telemetry.RPM:           3000,
		telemetry.EngineLoad:    45.9,
		telemetry.TimingAdvance: 12.34,
		telemetry.MAF:           25.5,
		telemetry.MaxMAF:        255,
	}}

	redrawn := d.Apply(snap)
	assert.Equal(t, 2, redrawn, "only speed and rpm are gauges in this snapshot")

	assert.Equal(t, 200.0, d.Gauge(telemetry.Speed).Displayed())
	assert.Equal(t, 3000.0, d.Gauge(telemetry.RPM).Displayed())

	r := d.Readouts()
	assert.Equal(t, "ENGINE LOAD: 45%", r.EngineLoad)
	assert.InDelta(t, 0.459, r.EngineLoadRatio, 1e-9)
	assert.Equal(t, "12.3°", r.TimingAdvance)
	assert.Equal(t, "MAF (Mass Air Flow): 25.5 g/s", r.MAF)
	assert.InDelta(t, 0.1, r.MAFRatio, 1e-9)
	assert.Equal(t, "255.0 g/s", r.MaxMAF)

	assert.Equal(t, 0, d.Apply(snap), "identical snapshot causes no redraw")
	assert.Equal(t, []float64{250, 250}, d.SpeedHistory())
	assert.Equal(t, []float64{3000, 3000}, d.RPMHistory())
}

func TestMAFRatioWithoutMaximum(t *testing.T) {
	d := dashboard.New()
	d.Apply(telemetry.Snapshot{Values: map[telemetry.Metric]float64{telemetry.MAF: 50}})
	assert.Zero(t, d.Readouts().MAFRatio)
}

func TestEveryPageGaugeIsBuilt(t *testing.T) {
	d := dashboard.New()
	for _, p := range dashboard.Pages() {
		for _, def := range p.Gauges() {
			rs := d.Gauge(def.Metric)
			require.NotNil(t, rs, def.Metric)
			assert.Equal(t, def.Spec, rs.Spec())
		}
	}
}
