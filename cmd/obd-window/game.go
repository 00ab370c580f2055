package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"obd-dashboard.klederson.com/internal/config"
	"obd-dashboard.klederson.com/internal/dashboard"
	"obd-dashboard.klederson.com/internal/gauge"
	"obd-dashboard.klederson.com/internal/raster"
	"obd-dashboard.klederson.com/internal/telemetry"
	"obd-dashboard.klederson.com/internal/window"
)

const (
	barH     = 28
	margin   = 24
	gaugeTop = 64
)

var (
	colorBG        = color.RGBA{0, 0, 0, 255}
	colorHeaderBG  = color.RGBA{0, 0x22, 0, 255}
	colorPanelBG   = color.RGBA{0, 0x10, 0x03, 255}
	colorLine      = color.RGBA{0, 0xaa, 0x22, 255}
	colorBright    = color.RGBA{0, 0xff, 0x41, 255}
	colorDim       = color.RGBA{0, 0x4a, 0x0a, 255}
	colorError     = color.RGBA{0xff, 0x33, 0, 255}
	colorBannerBG  = color.RGBA{0, 0, 0, 230}
	colorTabActive = color.RGBA{0, 0x8f, 0x11, 255}
)

// Game adapts the controller to ebiten's update and draw callbacks.
type Game struct {
	ctrl    *window.Controller
	painter *raster.Painter
	images  map[*gauge.RenderState]*ebiten.Image
}

func NewGame(ctrl *window.Controller) *Game {
	return &Game{
		ctrl:    ctrl,
		painter: raster.NewPainter(config.GaugePixelSize),
		images:  make(map[*gauge.RenderState]*ebiten.Image),
	}
}

func (g *Game) Update() error {
	g.ctrl.Poll()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.ctrl.Confirming() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyY), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			g.ctrl.Confirm()
		case inpututil.IsKeyJustPressed(ebiten.KeyN), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			g.ctrl.Cancel()
		}
		return nil
	}

	if text, _ := g.ctrl.Banner(); text != "" {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.ctrl.Cancel()
		}
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.ctrl.NextPage()
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		g.ctrl.GotoPage(dashboard.PageMain)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		g.ctrl.GotoPage(dashboard.PageTemperatures)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		g.ctrl.GotoPage(dashboard.PageFuelAir)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit4):
		g.ctrl.GotoPage(dashboard.PageDiagnostics)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.ctrl.ReadCodes()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.ctrl.RequestClear()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	g.drawHeader(screen)

	dash := g.ctrl.Dash
	r := dash.Readouts()
	below := float32(gaugeTop + config.GaugePixelSize + 24)

	switch page := g.ctrl.Page(); page {
	case dashboard.PageDiagnostics:
		g.drawDiagnostics(screen, r)
	default:
		g.drawGauges(screen, page)
		switch page {
		case dashboard.PageMain:
			drawMeter(screen, margin, below, r.EngineLoad, r.EngineLoadRatio)
			ebitenutil.DebugPrintAt(screen, "TIMING ADVANCE: "+r.TimingAdvance, margin, int(below)+44)
			ebitenutil.DebugPrintAt(screen, "ENGINE RUN TIME: "+r.Runtime, margin, int(below)+62)
			drawTrend(screen, 520, below, 460, 50, "SPEED", dash.SpeedHistory())
			drawTrend(screen, 520, below+80, 460, 50, "RPM", dash.RPMHistory())
		case dashboard.PageFuelAir:
			drawMeter(screen, margin, below, r.MAF, r.MAFRatio)
			ebitenutil.DebugPrintAt(screen, "MAX MAF: "+r.MaxMAF, margin, int(below)+44)
		}
	}

	g.drawStatus(screen)
	g.drawBanner(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.WindowWidth, barH, colorHeaderBG, true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s v%s", config.AppName, config.AppVersion), 8, 6)

	x := 120
	for i, p := range dashboard.Pages() {
		label := fmt.Sprintf("%d %s", i+1, p)
		w := len(label)*6 + 12
		if p == g.ctrl.Page() {
			vector.DrawFilledRect(screen, float32(x), 2, float32(w), barH-4, colorTabActive, true)
		}
		ebitenutil.DebugPrintAt(screen, label, x+6, 6)
		x += w + 6
	}

	mode := g.ctrl.Source().Mode().String()
	ebitenutil.DebugPrintAt(screen, mode, config.WindowWidth-len(mode)*6-10, 6)
}

func (g *Game) drawGauges(screen *ebiten.Image, page dashboard.Page) {
	defs := page.Gauges()
	size := config.GaugePixelSize
	gap := (config.WindowWidth - 2*margin - len(defs)*size) / max(1, len(defs)-1)

	for i, def := range defs {
		rs := g.ctrl.Dash.Gauge(def.Metric)
		img, changed := g.painter.Paint(rs)

		eimg, ok := g.images[rs]
		if !ok {
			eimg = ebiten.NewImage(size, size)
			g.images[rs] = eimg
		}
		if changed || !ok {
			eimg.WritePixels(img.Pix)
		}

		x := margin + i*(size+gap)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x), gaugeTop)
		screen.DrawImage(eimg, op)

		title := def.Spec.Title
		ebitenutil.DebugPrintAt(screen, title, x+size/2-len(title)*3, gaugeTop-18)
	}
}

func (g *Game) drawDiagnostics(screen *ebiten.Image, r dashboard.Readouts) {
	x, y := float32(margin), float32(gaugeTop-20)
	w, h := float32(config.WindowWidth-2*margin), float32(config.WindowHeight-gaugeTop-barH-24)
	vector.DrawFilledRect(screen, x, y, w, h, colorPanelBG, true)
	vector.StrokeRect(screen, x, y, w, h, 1, colorLine, true)

	lines := []string{
		"DIAGNOSTICS",
		"",
		"DISTANCE SINCE CLEAR: " + r.DistanceSinceClear,
		"TIME SINCE CLEAR:     " + r.TimeSinceClear,
		"ENGINE RUN TIME:      " + r.Runtime,
		"",
	}
	if report := g.ctrl.Report(); report != "" {
		lines = append(lines, strings.Split(report, "\n")...)
	} else {
		lines = append(lines, "No trouble code read yet.")
	}
	lines = append(lines, "", "[G] read trouble codes   [C] clear trouble codes")
	if g.ctrl.Busy() {
		lines = append(lines, "", "waiting for adapter...")
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), int(x)+16, int(y)+14)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	y := float32(config.WindowHeight - barH)
	vector.DrawFilledRect(screen, 0, y, config.WindowWidth, barH, colorHeaderBG, true)

	src := g.ctrl.Source()
	state := "SIMULATED"
	if src.Mode() == telemetry.ModeLive {
		state = "OFFLINE"
		if src.Connected() {
			state = "CONNECTED"
		}
	}
	st := g.ctrl.Dash.State
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("[%s]  Samples: %d  Failed reads: %d  [TAB] page  [1-4] jump  [G] codes  [C] clear  [Q] quit",
			state, st.Samples(), st.Latest().Failures),
		8, int(y)+6)
}

func (g *Game) drawBanner(screen *ebiten.Image) {
	text, isErr := g.ctrl.Banner()
	if text == "" {
		return
	}
	lines := strings.Split(text, "\n")
	if !g.ctrl.Confirming() {
		lines = append(lines, "", "[ENTER] dismiss")
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	w := float32(width*6 + 40)
	h := float32(len(lines)*16 + 30)
	x := (config.WindowWidth - w) / 2
	y := (config.WindowHeight - h) / 2

	border := colorBright
	if isErr {
		border = colorError
	}
	vector.DrawFilledRect(screen, x, y, w, h, colorBannerBG, true)
	vector.StrokeRect(screen, x, y, w, h, 2, border, true)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), int(x)+20, int(y)+15)
}

func drawMeter(screen *ebiten.Image, x, y float32, label string, ratio float64) {
	const w, h = 440, 16
	ebitenutil.DebugPrintAt(screen, label, int(x), int(y))
	vector.DrawFilledRect(screen, x, y+18, w, h, colorDim, true)
	vector.DrawFilledRect(screen, x, y+18, w*float32(gauge.Clamp(ratio, 0, 1)), h, raster.ActiveColor(ratio), true)
	vector.StrokeRect(screen, x, y+18, w, h, 1, colorLine, true)
}

func drawTrend(screen *ebiten.Image, x, y, w, h float32, label string, values []float64) {
	ebitenutil.DebugPrintAt(screen, label+" TREND", int(x), int(y))
	top := y + 16
	vector.StrokeRect(screen, x, top, w, h, 1, colorDim, true)
	if len(values) < 2 {
		return
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := max(hi-lo, 1)

	step := w / float32(len(values)-1)
	py := func(v float64) float32 { return top + h - float32((v-lo)/span)*h }
	for i := 1; i < len(values); i++ {
		vector.StrokeLine(screen, x+step*float32(i-1), py(values[i-1]), x+step*float32(i), py(values[i]), 1.5, colorBright, true)
	}
}
