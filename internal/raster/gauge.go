package raster

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"obd-dashboard.klederson.com/internal/gauge"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	ColorBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	ColorFace       = color.RGBA{R: 0x00, G: 0x14, B: 0x04, A: 0xff}
	ColorTrack      = color.RGBA{R: 0x00, G: 0x4a, B: 0x0a, A: 0xff}
	ColorActive     = color.RGBA{R: 0x00, G: 0xff, B: 0x41, A: 0xff}
	ColorWarn       = color.RGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}
	ColorRedline    = color.RGBA{R: 0xff, G: 0x33, B: 0x00, A: 0xff}
	ColorTick       = color.RGBA{R: 0x00, G: 0x8f, B: 0x11, A: 0xff}
	ColorLabel      = color.RGBA{R: 0x00, G: 0xcc, B: 0x33, A: 0xff}
	ColorNeedle     = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	ColorValue      = color.RGBA{R: 0x00, G: 0xff, B: 0x41, A: 0xff}
)

var (
	labelFont = &proggy.TinySZ8pt7b
	valueFont = &freemono.Bold12pt7b
)

// ActiveColor picks the arc colour for a fill ratio.
func ActiveColor(ratio float64) color.RGBA {
	switch {
	case ratio >= 0.9:
		return ColorRedline
	case ratio >= 0.75:
		return ColorWarn
	default:
		return ColorActive
	}
}

// Layout is the pixel geometry of one square face.
type Layout struct {
	CX, CY float64
	Radius float64
	Band   float64
}

// NewLayout fits a dial into a size x size square.
func NewLayout(size int) Layout {
	r := float64(size)/2 - 4
	return Layout{
		CX:     float64(size) / 2,
		CY:     float64(size) / 2,
		Radius: r,
		Band:   math.Max(3, math.Round(r/10)),
	}
}

// DrawGauge paints a full face: track, active arc, ticks, labels, needle,
// hub and the numeric readout.
func DrawGauge(c *Canvas, spec gauge.Spec, geo gauge.Geometry, value float64) {
	w, h := c.Size()
	size := int(w)
	if int(h) < size {
		size = int(h)
	}
	l := NewLayout(size)

	c.Fill(ColorBackground)
	c.FillCircle(l.CX, l.CY, l.Radius, ColorFace)

	inner := l.Radius - l.Band
	c.Arc(l.CX, l.CY, inner, l.Radius, spec.StartAngleDeg, spec.SweepDeg, ColorTrack)
	c.Arc(l.CX, l.CY, inner, l.Radius, spec.StartAngleDeg, -geo.ActiveSweepDeg, ActiveColor(geo.Ratio))

	for i, a := range geo.TickAngles {
		x0, y0 := gauge.PointOnArc(a, inner-2)
		x1, y1 := gauge.PointOnArc(a, inner-8)
		c.Line(l.CX+x0, l.CY+y0, l.CX+x1, l.CY+y1, 2, ColorTick)

		lx, ly := gauge.PointOnArc(a, inner-20)
		c.TextCentered(labelFont, int(math.Round(l.CX+lx)), int(math.Round(l.CY+ly))+4, strconv.Itoa(geo.TickLabels[i]), ColorLabel)
	}

	nx, ny := gauge.PointOnArc(geo.NeedleAngleDeg, inner-12)
	c.Line(l.CX, l.CY, l.CX+nx, l.CY+ny, 3, ColorNeedle)
	c.FillCircle(l.CX, l.CY, 6, ColorNeedle)

	readY := int(l.CY + l.Radius*0.55)
	c.TextCentered(valueFont, int(l.CX), readY, spec.Format(spec.Clamp(value)), ColorValue)
	c.TextCentered(labelFont, int(l.CX), readY+14, spec.Unit, ColorLabel)
}

type face struct {
	frame  uint64
	canvas *Canvas
}

// Painter keeps one canvas per gauge and repaints it only after the gauge
// accepted a redraw.
type Painter struct {
	size    int
	faces   map[*gauge.RenderState]*face
	renders int
}

func NewPainter(size int) *Painter {
	return &Painter{size: size, faces: make(map[*gauge.RenderState]*face)}
}

// Paint returns the current face of rs and whether it changed since the
// previous call.
func (p *Painter) Paint(rs *gauge.RenderState) (*image.RGBA, bool) {
	f, ok := p.faces[rs]
	if ok && f.frame == rs.Frame() {
		return f.canvas.Image(), false
	}
	if !ok {
		f = &face{canvas: NewCanvas(p.size, p.size)}
		p.faces[rs] = f
	}

	DrawGauge(f.canvas, rs.Spec(), rs.Geometry(), rs.Displayed())
	f.frame = rs.Frame()
	p.renders++
	return f.canvas.Image(), true
}

// Renders counts repaints.
func (p *Painter) Renders() int { return p.renders }
