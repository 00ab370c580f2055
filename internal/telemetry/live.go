package telemetry

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"obd-dashboard.klederson.com/internal/errors"
	"obd-dashboard.klederson.com/internal/obd"
)

// Querier is the adapter connection a Live source reads through.
type Querier interface {
	Query(ctx context.Context, cmd *obd.Command) (obd.Response, error)
	Connected() bool
	Close() error
}

type liveMetric struct {
	metric Metric
	key    string
	def    float64
}

// Catalog key and fallback for each live metric. Intake pressure has no
// catalog entry and stays simulated.
var liveMetrics = []liveMetric{
	{Speed, obd.KeySpeed, 0},
	{RPM, obd.KeyRPM, 0},
	{Throttle, obd.KeyThrottle, 0},
	{EngineLoad, obd.KeyEngineLoad, 0},
	{TimingAdvance, obd.KeyTimingAdvance, 0},
	{CoolantTemp, obd.KeyCoolantTemp, 80},
	{IntakeTemp, obd.KeyIntakeTemp, 25},
	{OilTemp, obd.KeyOilTemp, 90},
	{FuelPressure, obd.KeyFuelPressure, 300},
	{FuelRate, obd.KeyFuelRate, 5},
	{MAF, obd.KeyMAF, 10},
	{MaxMAF, obd.KeyMaxMAF, 255},
}

// Live reads every metric from the adapter once per tick.
type Live struct {
	q       Querier
	catalog *obd.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLive wraps an open adapter connection. rng feeds the simulated intake
// pressure; nil seeds from the clock.
func NewLive(q Querier, catalog *obd.Catalog, rng *rand.Rand) *Live {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Live{q: q, catalog: catalog, rng: rng}
}

// Sample issues one query per metric. Failed or empty reads fall back to
// the metric's default and are counted, not reported.
func (l *Live) Sample(ctx context.Context) Snapshot {
	snap := newSnapshot()

	for _, lm := range liveMetrics {
		v, ok := l.read(ctx, lm.key)
		if !ok {
			v = lm.def
			snap.Failures++
		}
		snap.Values[lm.metric] = v
	}

	l.mu.Lock()
	snap.Values[IntakePressure] = simulatedBounds[IntakePressure].draw(l.rng)
	l.mu.Unlock()

	snap.Counters = Counters{
		Runtime:        l.counter(ctx, obd.KeyRunTime, &snap),
		Distance:       l.counter(ctx, obd.KeyDistanceSinceClear, &snap),
		TimeSinceClear: l.counter(ctx, obd.KeyTimeSinceClear, &snap),
	}
	return snap
}

// counter only ever overwrites an accumulator with a strictly positive
// reading.
func (l *Live) counter(ctx context.Context, key string, snap *Snapshot) CounterUpdate {
	v, ok := l.read(ctx, key)
	if !ok {
		snap.Failures++
		return CounterUpdate{Kind: Keep}
	}
	if v <= 0 {
		return CounterUpdate{Kind: Keep}
	}
	return CounterUpdate{Kind: Absolute, Value: v}
}

func (l *Live) read(ctx context.Context, key string) (float64, bool) {
	cmd, ok := l.catalog.Command(key)
	if !ok {
		return 0, false
	}
	resp, err := l.q.Query(ctx, cmd)
	if err != nil || resp.IsNull() {
		return 0, false
	}
	return resp.Value, true
}

// TroubleCodes asks the vehicle for its stored codes. NO DATA means none.
func (l *Live) TroubleCodes(ctx context.Context) ([]TroubleCode, error) {
	cmd, ok := l.catalog.Command(obd.KeyGetDTC)
	if !ok {
		return nil, errors.Newf(errors.ErrTroubleCodeAction, "catalog has no %q command", obd.KeyGetDTC)
	}

	resp, err := l.q.Query(ctx, cmd)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrTroubleCodeAction, err, "Failed to read DTCs")
	}

	codes := make([]TroubleCode, 0, len(resp.Codes))
	for _, d := range resp.Codes {
		codes = append(codes, TroubleCode{Code: d.Code, Description: d.Description})
	}
	return codes, nil
}

// ClearTroubleCodes asks the vehicle to clear its stored codes.
func (l *Live) ClearTroubleCodes(ctx context.Context) error {
	cmd, ok := l.catalog.Command(obd.KeyClearDTC)
	if !ok {
		return errors.Newf(errors.ErrTroubleCodeAction, "catalog has no %q command", obd.KeyClearDTC)
	}

	if _, err := l.q.Query(ctx, cmd); err != nil {
		return errors.Wrapf(errors.ErrTroubleCodeAction, err, "Failed to clear DTCs")
	}
	return nil
}

func (l *Live) Mode() Mode { return ModeLive }

func (l *Live) Connected() bool { return l.q.Connected() }

func (l *Live) Close() error { return l.q.Close() }
