package dashboard

import "obd-dashboard.klederson.com/internal/telemetry"

// State holds the latest readings and the three cumulative counters. It is
// owned by the UI goroutine and has no locking.
type State struct {
	RuntimeSeconds     float64
	DistanceSinceClear float64
	TimeSinceClear     float64

	latest  telemetry.Snapshot
	samples int
}

// Merge folds one snapshot into the state.
func (s *State) Merge(snap telemetry.Snapshot) {
	s.RuntimeSeconds = mergeCounter(s.RuntimeSeconds, snap.Counters.Runtime)
	s.DistanceSinceClear = mergeCounter(s.DistanceSinceClear, snap.Counters.Distance)
	s.TimeSinceClear = mergeCounter(s.TimeSinceClear, snap.Counters.TimeSinceClear)
	s.latest = snap
	s.samples++
}

func mergeCounter(cur float64, u telemetry.CounterUpdate) float64 {
	switch u.Kind {
	case telemetry.Increment:
		return cur + u.Value
	case telemetry.Absolute:
		return u.Value
	default:
		return cur
	}
}

// ResetTroubleCodeCounters zeroes distance and time since clear. Engine
// runtime is not touched.
func (s *State) ResetTroubleCodeCounters() {
	s.DistanceSinceClear = 0
	s.TimeSinceClear = 0
}

// Value returns the latest reading for m, or 0 before the first sample.
func (s *State) Value(m telemetry.Metric) float64 {
	return s.latest.Values[m]
}

// Latest is the most recently merged snapshot.
func (s *State) Latest() telemetry.Snapshot { return s.latest }

// Samples counts merged snapshots.
func (s *State) Samples() int { return s.samples }
