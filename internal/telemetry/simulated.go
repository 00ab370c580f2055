package telemetry

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/obd"
)

type bound struct {
	lo, hi  float64
	integer bool
}

func (b bound) draw(rng *rand.Rand) float64 {
	if b.integer {
		lo, hi := int(b.lo), int(b.hi)
		return float64(lo + rng.Intn(hi-lo+1))
	}
	return b.lo + rng.Float64()*(b.hi-b.lo)
}

// Bounds of the simulated readings. Integer bounds are inclusive.
var simulatedBounds = map[Metric]bound{
	Speed:          {0, 180, true},
	RPM:            {800, 7000, true},
	Throttle:       {0, 100, true},
	EngineLoad:     {10, 95, true},
	TimingAdvance:  {-10, 45, false},
	CoolantTemp:    {70, 105, true},
	IntakeTemp:     {15, 45, true},
	OilTemp:        {80, 120, true},
	FuelPressure:   {250, 550, true},
	FuelRate:       {0.5, 25, false},
	IntakePressure: {30, 120, true},
	MAF:            {2, 95, false},
}

// SimulatedTroubleCodes is the pool simulated trouble-code reads draw from.
var SimulatedTroubleCodes = []string{"P0420", "P0171", "P0101", "P0300", "C0035"}

const maxSimulatedCodes = 3

// Simulated generates plausible random readings. It is safe for concurrent
// use.
type Simulated struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated source. A nil rng is seeded from the
// clock.
func NewSimulated(rng *rand.Rand) *Simulated {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulated{rng: rng}
}

// Sample draws every metric independently and advances the counters by one
// tick.
func (s *Simulated) Sample(_ context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := newSnapshot()
	for _, m := range Metrics {
		if b, ok := simulatedBounds[m]; ok {
			snap.Values[m] = b.draw(s.rng)
		}
	}
	snap.Values[MaxMAF] = config.DefaultMaxMAF

	distance := bound{config.DistanceStepMin, config.DistanceStepMax, false}
	snap.Counters = Counters{
		Runtime:        CounterUpdate{Kind: Increment, Value: config.RuntimeStep},
		Distance:       CounterUpdate{Kind: Increment, Value: distance.draw(s.rng)},
		TimeSinceClear: CounterUpdate{Kind: Increment, Value: config.TimeSinceClearStep},
	}
	return snap
}

// TroubleCodes returns zero to three distinct codes from the simulated pool.
func (s *Simulated) TroubleCodes(_ context.Context) ([]TroubleCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.rng.Intn(maxSimulatedCodes + 1)
	perm := s.rng.Perm(len(SimulatedTroubleCodes))[:n]

	codes := make([]TroubleCode, 0, n)
	for _, i := range perm {
		code := SimulatedTroubleCodes[i]
		codes = append(codes, TroubleCode{Code: code, Description: obd.DescribeDTC(code)})
	}
	return codes, nil
}

// ClearTroubleCodes has nothing external to clear.
func (s *Simulated) ClearTroubleCodes(_ context.Context) error { return nil }

func (s *Simulated) Mode() Mode { return ModeSimulated }

func (s *Simulated) Connected() bool { return true }

func (s *Simulated) Close() error { return nil }
