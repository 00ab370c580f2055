// Package telemetry produces one Snapshot of vehicle readings per refresh
// tick, either from a random simulation or from a live OBD adapter.
package telemetry

import (
	"context"
	"time"
)

// Metric names a gauge-able reading.
type Metric string

const (
	Speed          Metric = "speed"
	RPM            Metric = "rpm"
	Throttle       Metric = "throttle"
	EngineLoad     Metric = "engineLoad"
	TimingAdvance  Metric = "timingAdvance"
	CoolantTemp    Metric = "coolantTemp"
	IntakeTemp     Metric = "intakeTemp"
	OilTemp        Metric = "oilTemp"
	FuelPressure   Metric = "fuelPressure"
	FuelRate       Metric = "fuelRate"
	IntakePressure Metric = "intakePressure"
	MAF            Metric = "maf"
	MaxMAF         Metric = "maxMaf"
)

// Metrics lists every metric in sampling order.
var Metrics = []Metric{
	Speed, RPM, Throttle, EngineLoad, TimingAdvance,
	CoolantTemp, IntakeTemp, OilTemp,
	FuelPressure, FuelRate, IntakePressure, MAF, MaxMAF,
}

// CounterKind says how a counter update merges into the accumulators.
type CounterKind int

const (
	// Keep leaves the accumulator untouched.
	Keep CounterKind = iota
	// Increment adds Value to the accumulator.
	Increment
	// Absolute replaces the accumulator with Value.
	Absolute
)

// CounterUpdate is one tick's contribution to a cumulative counter.
type CounterUpdate struct {
	Kind  CounterKind
	Value float64
}

// Counters carries the three cumulative counters for one tick.
type Counters struct {
	Runtime        CounterUpdate
	Distance       CounterUpdate
	TimeSinceClear CounterUpdate
}

// Snapshot is one tick's worth of readings.
type Snapshot struct {
	At       time.Time
	Values   map[Metric]float64
	Counters Counters
	// Failures counts metric reads that fell back to a default.
	Failures int
}

func newSnapshot() Snapshot {
	return Snapshot{
		At:     time.Now(),
		Values: make(map[Metric]float64, len(Metrics)),
	}
}

// Value returns the reading for m and whether it is present.
func (s Snapshot) Value(m Metric) (float64, bool) {
	v, ok := s.Values[m]
	return v, ok
}

// TroubleCode is a stored fault code. Description is empty when unknown.
type TroubleCode struct {
	Code        string
	Description string
}

func (t TroubleCode) String() string {
	if t.Description == "" {
		return t.Code
	}
	return t.Code + " - " + t.Description
}

// Mode identifies which kind of source is feeding the dashboard.
type Mode int

const (
	ModeSimulated Mode = iota
	ModeLive
)

func (m Mode) String() string {
	if m == ModeLive {
		return "Live OBD"
	}
	return "Simulation"
}

// Source is a telemetry producer. Sample never fails: unreadable metrics
// come back as their defaults.
type Source interface {
	Sample(ctx context.Context) Snapshot
	TroubleCodes(ctx context.Context) ([]TroubleCode, error)
	ClearTroubleCodes(ctx context.Context) error
	Mode() Mode
	Connected() bool
	Close() error
}
