package gauge

import "math"

// Geometry is everything a renderer needs to draw a gauge for one value.
type Geometry struct {
	// ActiveSweepDeg is the signed extent of the filled arc measured from
	// the start angle. It is zero at Min and -SweepDeg at Max.
	ActiveSweepDeg float64
	NeedleAngleDeg float64
	TickAngles     []float64
	TickLabels     []int
	Ratio          float64
}

// ComputeGeometry is pure: the same spec and value always give the same
// geometry. Values outside the range are clamped first.
func ComputeGeometry(spec Spec, value float64) Geometry {
	ratio := spec.Ratio(value)

	g := Geometry{
		ActiveSweepDeg: -spec.SweepDeg * ratio,
		NeedleAngleDeg: spec.StartAngleDeg - spec.SweepDeg*ratio,
		TickAngles:     make([]float64, spec.TickCount),
		TickLabels:     make([]int, spec.TickCount),
		Ratio:          ratio,
	}

	steps := float64(spec.TickCount - 1)
	for i := 0; i < spec.TickCount; i++ {
		f := float64(i) / steps
		g.TickAngles[i] = spec.StartAngleDeg - spec.SweepDeg*f
		g.TickLabels[i] = int(math.Round(spec.Min + (spec.Max-spec.Min)*f))
	}

	return g
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// PointOnArc returns the offset of the point at angle deg on a circle of
// radius r, in screen coordinates (y grows downward).
func PointOnArc(deg, r float64) (dx, dy float64) {
	rad := Radians(deg)
	return r * math.Cos(rad), -r * math.Sin(rad)
}
