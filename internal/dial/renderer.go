// Package dial draws radial gauges into terminal cells.
package dial

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/gauge"
)

// Kind classifies what a cell shows.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindTrack
	KindActive
	KindTick
	KindLabel
	KindNeedle
	KindCenter
	KindValue
)

var (
	colorActive  = lipgloss.Color("#00FF41")
	colorWarn    = lipgloss.Color("#FFAA00")
	colorRedline = lipgloss.Color("#FF3300")
	colorTrack   = lipgloss.Color("#004A0A")
	colorTick    = lipgloss.Color("#008F11")
	colorLabel   = lipgloss.Color("#00CC33")

	styleTrack  = lipgloss.NewStyle().Foreground(colorTrack)
	styleTick   = lipgloss.NewStyle().Foreground(colorTick)
	styleLabel  = lipgloss.NewStyle().Foreground(colorLabel)
	styleNeedle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	styleCenter = lipgloss.NewStyle().Foreground(colorActive).Bold(true)
	styleValue  = lipgloss.NewStyle().Foreground(colorActive).Bold(true)
)

type cell struct {
	ch   rune
	kind Kind
}

// Grid is a rasterised dial before styling.
type Grid struct {
	Width, Height    int
	CenterX, CenterY int
	Radius           float64
	cells            [][]cell
}

// At returns the rune and kind at a cell. Out-of-range cells are empty.
func (g *Grid) At(col, row int) (rune, Kind) {
	if col < 0 || col >= g.Width || row < 0 || row >= g.Height {
		return ' ', KindEmpty
	}
	c := g.cells[row][col]
	return c.ch, c.kind
}

func (g *Grid) set(col, row int, ch rune, kind Kind) {
	if col < 0 || col >= g.Width || row < 0 || row >= g.Height {
		return
	}
	g.cells[row][col] = cell{ch, kind}
}

func (g *Grid) text(col, row int, s string, kind Kind) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r, kind)
	}
}

// Rasterize lays out the arc, ticks, labels, needle and value text for one
// geometry. It returns nil when the area is too small for a dial.
func Rasterize(width, height int, spec gauge.Spec, geo gauge.Geometry, value float64) *Grid {
	if width < 9 || height < 5 {
		return nil
	}

	g := &Grid{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
	g.Radius = math.Min(float64(g.CenterX-1), float64(g.CenterY)/config.AspectRatio)
	if g.Radius < 3 {
		g.Radius = 3
	}
	g.cells = make([][]cell, height)
	for row := range g.cells {
		g.cells[row] = make([]cell, width)
		for col := range g.cells[row] {
			g.cells[row][col] = cell{' ', KindEmpty}
		}
	}

	start := spec.StartAngleDeg
	end := start - spec.SweepDeg

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if math.Abs(CellDistance(col, row, g.CenterX, g.CenterY)-g.Radius) >= 0.5 {
				continue
			}
			a := Unwind(CellAngle(col, row, g.CenterX, g.CenterY), start)
			if a < end {
				continue
			}
			kind := KindTrack
			if a >= geo.NeedleAngleDeg && geo.ActiveSweepDeg != 0 {
				kind = KindActive
			}
			g.set(col, row, ArcChar(a), kind)
		}
	}

	for _, a := range geo.TickAngles {
		col, row := g.point(a, g.Radius-1)
		g.set(col, row, '·', KindTick)
	}

	g.labels(geo)
	g.needle(geo.NeedleAngleDeg)

	valueRow := g.CenterY + int(math.Round(g.Radius*config.AspectRatio*0.6))
	if valueRow <= g.CenterY {
		valueRow = g.CenterY + 1
	}
	g.centered(valueRow, spec.Format(value), KindValue)
	g.centered(valueRow+1, spec.Unit, KindLabel)
	g.set(g.CenterX, g.CenterY, 'o', KindCenter)

	return g
}

func (g *Grid) point(a, r float64) (int, int) {
	dx, dy := gauge.PointOnArc(a, r)
	return g.CenterX + int(math.Round(dx)), g.CenterY + int(math.Round(dy*config.AspectRatio))
}

func (g *Grid) centered(row int, s string, kind Kind) {
	g.text(g.CenterX-len([]rune(s))/2, row, s, kind)
}

// Small dials only label both ends and the middle.
func (g *Grid) labels(geo gauge.Geometry) {
	step := 1
	if g.Radius < 12 {
		step = len(geo.TickLabels) / 2
	}
	if step < 1 {
		step = 1
	}

	for i := 0; i < len(geo.TickLabels); i += step {
		s := strconv.Itoa(geo.TickLabels[i])
		col, row := g.point(geo.TickAngles[i], g.Radius-2.5)
		n := len([]rune(s))
		switch {
		case col < g.CenterX-1:
		case col > g.CenterX+1:
			col -= n - 1
		default:
			col -= n / 2
		}
		g.text(col, row, s, KindLabel)
	}
}

func (g *Grid) needle(a float64) {
	length := g.Radius - 1.5
	steps := int(length * 2)
	if steps < 2 {
		steps = 2
	}

	ch := LineChar(a)
	var tipCol, tipRow int
	for s := 1; s <= steps; s++ {
		tipCol, tipRow = g.point(a, length*float64(s)/float64(steps))
		g.set(tipCol, tipRow, ch, KindNeedle)
	}
	g.set(tipCol, tipRow, TipChar(a), KindNeedle)
}

// Render styles a rasterised dial as terminal text.
func Render(g *Grid, ratio float64) string {
	if g == nil {
		return ""
	}

	active := lipgloss.NewStyle().Foreground(activeColor(ratio)).Bold(true)

	var sb strings.Builder
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := g.cells[row][col]
			s := string(c.ch)
			switch c.kind {
			case KindTrack:
				sb.WriteString(styleTrack.Render(s))
			case KindActive:
				sb.WriteString(active.Render(s))
			case KindTick:
				sb.WriteString(styleTick.Render(s))
			case KindLabel:
				sb.WriteString(styleLabel.Render(s))
			case KindNeedle:
				sb.WriteString(styleNeedle.Render(s))
			case KindCenter:
				sb.WriteString(styleCenter.Render(s))
			case KindValue:
				sb.WriteString(styleValue.Render(s))
			default:
				sb.WriteRune(c.ch)
			}
		}
		if row < g.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func activeColor(ratio float64) lipgloss.Color {
	switch {
	case ratio >= 0.9:
		return colorRedline
	case ratio >= 0.75:
		return colorWarn
	default:
		return colorActive
	}
}
