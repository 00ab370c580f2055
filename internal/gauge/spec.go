// Package gauge holds the radial gauge model: the geometry derived from a
// value, and the per-gauge render state that coalesces small changes.
//
// Angles use the math convention in degrees: 0 points east and positive
// angles turn counter-clockwise. A gauge starts at StartAngleDeg for its
// minimum and sweeps clockwise by SweepDeg to its maximum, so the needle
// angle decreases as the value grows.
package gauge

import (
	"fmt"

	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/errors"
)

// Spec is the static description of one gauge.
type Spec struct {
	Title         string
	Min           float64
	Max           float64
	Unit          string
	TickCount     int
	StartAngleDeg float64
	SweepDeg      float64
}

// NewSpec returns a Spec with the standard 225° start, 270° sweep and nine
// ticks.
func NewSpec(title string, min, max float64, unit string) Spec {
	return Spec{
		Title:         title,
		Min:           min,
		Max:           max,
		Unit:          unit,
		TickCount:     config.GaugeTickCount,
		StartAngleDeg: config.GaugeStartDeg,
		SweepDeg:      config.GaugeSweepDeg,
	}
}

// MustSpec is NewSpec that panics on an invalid range. Used for the
// built-in gauge table.
func MustSpec(title string, min, max float64, unit string) Spec {
	s := NewSpec(title, min, max, unit)
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}

// Validate checks Min < Max and a usable tick count.
func (s Spec) Validate() error {
	if !(s.Min < s.Max) {
		return errors.Newf(errors.ErrInvalidConfig, "gauge %q: min %g must be below max %g", s.Title, s.Min, s.Max)
	}
	if s.TickCount < 2 {
		return errors.Newf(errors.ErrInvalidConfig, "gauge %q: need at least 2 ticks, got %d", s.Title, s.TickCount)
	}
	return nil
}

// Clamp limits v to [Min, Max].
func (s Spec) Clamp(v float64) float64 {
	return Clamp(v, s.Min, s.Max)
}

// Ratio is the clamped value's position in the range, 0 at Min and 1 at Max.
func (s Spec) Ratio(v float64) float64 {
	return (s.Clamp(v) - s.Min) / (s.Max - s.Min)
}

// Format renders a value the way the gauge face shows it: whole units,
// truncated toward zero.
func (s Spec) Format(v float64) string {
	return fmt.Sprintf("%d", int(v))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
