// Package raster draws gauge faces into plain RGBA images. The canvas is a
// tinygo drivers.Displayer so tinyfont can write labels straight into it,
// and the window adapter uploads the finished pixels to the GPU.
package raster

import (
	"image"
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var _ drivers.Displayer = (*Canvas)(nil)

// Canvas is an in-memory framebuffer.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a w x h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (c *Canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.set(int(x), int(y), col)
}

// Display is a no-op; pixels are read back with Image.
func (c *Canvas) Display() error { return nil }

// Image exposes the backing pixels.
func (c *Canvas) Image() *image.RGBA { return c.img }

// At returns the colour at x, y.
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return
	}
	c.img.SetRGBA(x, y, col)
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.RGBA) {
	p := c.img.Pix
	for i := 0; i+3 < len(p); i += 4 {
		p[i], p[i+1], p[i+2], p[i+3] = col.R, col.G, col.B, col.A
	}
}

// Line draws a straight line of the given pixel width.
func (c *Canvas) Line(x0, y0, x1, y1 float64, width int, col color.RGBA) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	half := float64(width) / 2
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		c.FillCircle(x0+dx*t, y0+dy*t, half, col)
	}
}

// FillCircle fills a disc of radius r centred at cx, cy.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	if r < 0.5 {
		c.set(int(math.Round(cx)), int(math.Round(cy)), col)
		return
	}
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				c.set(x, y, col)
			}
		}
	}
}

// Arc paints the band between inner and outer radius, from startDeg sweeping
// clockwise by sweepDeg. Angles use the math convention.
func (c *Canvas) Arc(cx, cy, inner, outer, startDeg, sweepDeg float64, col color.RGBA) {
	if sweepDeg <= 0 {
		return
	}
	for y := int(math.Floor(cy - outer)); y <= int(math.Ceil(cy+outer)); y++ {
		for x := int(math.Floor(cx - outer)); x <= int(math.Ceil(cx+outer)); x++ {
			fx, fy := float64(x)-cx, cy-float64(y)
			d := math.Hypot(fx, fy)
			if d <= inner || d > outer {
				continue
			}
			a := math.Atan2(fy, fx) * 180 / math.Pi
			if clockwiseFrom(startDeg, a) <= sweepDeg {
				c.set(x, y, col)
			}
		}
	}
}

// clockwiseFrom is how far a lies clockwise of start, in [0, 360).
func clockwiseFrom(start, a float64) float64 {
	d := math.Mod(start-a, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Text writes s with its baseline at y.
func (c *Canvas) Text(font tinyfont.Fonter, x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, font, int16(x), int16(y), s, col)
}

// TextCentered writes s centred on x.
func (c *Canvas) TextCentered(font tinyfont.Fonter, x, y int, s string, col color.RGBA) {
	c.Text(font, x-TextWidth(font, s)/2, y, s, col)
}

// TextWidth is the advance width of s in pixels.
func TextWidth(font tinyfont.Fonter, s string) int {
	_, outbox := tinyfont.LineWidth(font, s)
	return int(outbox)
}
