package dial

import "obd-dashboard.klederson.com/internal/gauge"

type face struct {
	frame uint64
	w, h  int
	out   string
}

// Painter caches each gauge's rendered face and only re-rasterises when the
// gauge accepted a redraw or the panel was resized.
type Painter struct {
	faces   map[*gauge.RenderState]face
	renders int
}

func NewPainter() *Painter {
	return &Painter{faces: make(map[*gauge.RenderState]face)}
}

// Paint returns the styled dial for rs in a w x h area.
func (p *Painter) Paint(rs *gauge.RenderState, w, h int) string {
	if f, ok := p.faces[rs]; ok && f.frame == rs.Frame() && f.w == w && f.h == h {
		return f.out
	}

	geo := rs.Geometry()
	out := Render(Rasterize(w, h, rs.Spec(), geo, rs.Displayed()), geo.Ratio)
	p.faces[rs] = face{frame: rs.Frame(), w: w, h: h, out: out}
	p.renders++
	return out
}

// Renders counts rasterisations, for diagnostics.
func (p *Painter) Renders() int { return p.renders }
