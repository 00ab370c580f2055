package dial

import (
	"math"

	"obd-dashboard.klederson.com/internal/config"
)

// CellDistance computes the distance from a cell to the dial center,
// accounting for terminal aspect ratio.
func CellDistance(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle returns the direction from center to a cell in degrees, math
// convention (0=east, counter-clockwise), in [0, 360).
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return NormalizeDeg(math.Atan2(-dy, dx) * 180 / math.Pi)
}

// NormalizeDeg wraps an angle to [0, 360).
func NormalizeDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Unwind maps a to the equivalent angle in (start-360, start], the range a
// clockwise gauge sweep is measured in.
func Unwind(a, start float64) float64 {
	return start - NormalizeDeg(start-a)
}

func sector(a float64) int {
	return int(math.Round(NormalizeDeg(a)/45)) % 8
}

// LineChar returns the character for a line heading in direction a.
func LineChar(a float64) rune {
	switch sector(a) {
	case 0, 4:
		return '-'
	case 2, 6:
		return '|'
	case 1, 5:
		return '/'
	default:
		return '\\'
	}
}

// ArcChar returns the character for a circle passing through angle a: the
// tangent there is perpendicular to the radius.
func ArcChar(a float64) rune {
	return LineChar(a + 90)
}

// TipChar returns the arrowhead for a needle pointing at a.
func TipChar(a float64) rune {
	switch sector(a) {
	case 0:
		return '>'
	case 1:
		return '/'
	case 2:
		return '^'
	case 3:
		return '\\'
	case 4:
		return '<'
	case 5:
		return '/'
	case 6:
		return 'v'
	default:
		return '\\'
	}
}
