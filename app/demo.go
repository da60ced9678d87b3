package app

import (
	"fmt"
	"image/color"
	"math"

	"sparkdraw/hal"
	"sparkdraw/sparkos/gfx"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

type preset struct {
	name  string
	curve gfx.Curve
}

var presets = []preset{
	{name: "example", curve: gfx.Curve{P0: gfx.Pt(0, 100), P1: gfx.Pt(100, 50), P2: gfx.Pt(200, 150), P3: gfx.Pt(300, 100)}},
	{name: "arch", curve: gfx.Curve{P0: gfx.Pt(20, 290), P1: gfx.Pt(60, 40), P2: gfx.Pt(260, 40), P3: gfx.Pt(300, 290)}},
	{name: "loop", curve: gfx.Curve{P0: gfx.Pt(40, 200), P1: gfx.Pt(300, 40), P2: gfx.Pt(20, 40), P3: gfx.Pt(280, 200)}},
	{name: "wave", curve: gfx.Curve{P0: gfx.Pt(10, 250), P1: gfx.Pt(150, 0), P2: gfx.Pt(170, 320), P3: gfx.Pt(310, 60)}},
}

var (
	colorBG     = color.RGBA{R: 0x08, G: 0x0B, B: 0x10, A: 0xFF}
	colorCurve  = color.RGBA{R: 0xFF, G: 0x30, B: 0x30, A: 0xFF}
	colorFill   = color.RGBA{R: 0x30, G: 0x80, B: 0xFF, A: 0xFF}
	colorHandle = color.RGBA{R: 0x50, G: 0x58, B: 0x68, A: 0xFF}
	colorPoint  = color.RGBA{R: 0xFF, G: 0xE0, B: 0x40, A: 0xFF}
	colorText   = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	colorHint   = color.RGBA{R: 0x88, G: 0xA6, B: 0xD6, A: 0xFF}
)

const (
	// Off-curve control points swing by this many pixels while animating.
	swing = 40
	// Milliseconds per animation radian.
	msPerRadian = 600
)

type demo struct {
	log   hal.Logger
	fb    hal.Framebuffer
	disp  *hal.FramebufferDisplayer
	surf  *gfx.DisplayerSurface
	keys  <-chan hal.KeyEvent
	ticks <-chan uint64

	font    *tinyfont.Font
	lineH   int16
	console *console
	initial Config

	resolution int
	fill       bool
	animate    bool
	preset     int

	now   uint64
	dirty bool
	err   error
}

func newDemo(h hal.HAL, cfg Config) *demo {
	if h == nil || h.Display() == nil {
		return nil
	}
	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Width() <= 0 || fb.Height() <= 0 {
		if l := h.Logger(); l != nil {
			l.WriteLineString("bezdemo: no RGB565 framebuffer, demo disabled")
		}
		return nil
	}

	cfg = cfg.withDefaults()
	disp := hal.NewFramebufferDisplayer(fb)
	d := &demo{
		log:        h.Logger(),
		fb:         fb,
		disp:       disp,
		surf:       gfx.NewDisplayerSurface(disp),
		font:       &proggy.TinySZ8pt7b,
		initial:    cfg,
		resolution: cfg.Resolution,
		fill:       cfg.Fill,
		animate:    !cfg.Static,
		preset:     cfg.Preset,
		dirty:      true,
	}
	d.lineH = int16(d.font.GetYAdvance())
	d.console = newConsole(fb.Width(), d.font, d.lineH)
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			d.keys = kbd.Events()
		}
	}
	if t := h.Time(); t != nil {
		d.ticks = t.Ticks()
	}

	d.logf("start %dx%d %s", fb.Width(), fb.Height(), d.describe())
	return d
}

func (d *demo) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	d.console.println(line)
	if d.log == nil {
		return
	}
	d.log.WriteLineString("bezdemo: " + line)
}

func (d *demo) describe() string {
	mode := "stroke"
	if d.fill {
		mode = "fill"
	}
	return fmt.Sprintf("res=%d mode=%s preset=%s animate=%v", d.resolution, mode, presets[d.preset].name, d.animate)
}

func (d *demo) step() error {
	d.drainTicks()
	d.drainKeys()
	if d.animate {
		d.dirty = true
	}
	if !d.dirty {
		return nil
	}
	d.dirty = false
	return d.render()
}

func (d *demo) drainTicks() {
	for {
		select {
		case seq, ok := <-d.ticks:
			if !ok {
				d.ticks = nil
				return
			}
			d.now = seq
		default:
			return
		}
	}
}

func (d *demo) drainKeys() {
	for {
		select {
		case ev, ok := <-d.keys:
			if !ok {
				d.keys = nil
				return
			}
			d.handleKey(ev)
		default:
			return
		}
	}
}

func (d *demo) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	before := d.describe()
	switch {
	case ev.Code == hal.KeyUp || ev.Rune == '+' || ev.Rune == '=':
		d.resolution = clampInt(d.resolution+1, minResolution, maxResolution)
	case ev.Code == hal.KeyDown || ev.Rune == '-':
		d.resolution = clampInt(d.resolution-1, minResolution, maxResolution)
	case ev.Code == hal.KeyEnter || ev.Rune == 'f':
		d.fill = !d.fill
	case ev.Code == hal.KeyRight || ev.Rune == 'n':
		d.preset = (d.preset + 1) % len(presets)
	case ev.Code == hal.KeyLeft || ev.Rune == 'p':
		d.preset = (d.preset + len(presets) - 1) % len(presets)
	case ev.Code == hal.KeyTab || ev.Rune == 'a':
		d.animate = !d.animate
	case ev.Code == hal.KeyEscape || ev.Rune == 'r':
		d.resolution = d.initial.Resolution
		d.fill = d.initial.Fill
		d.animate = !d.initial.Static
		d.preset = d.initial.Preset
	default:
		return
	}
	if after := d.describe(); after != before {
		d.logf("%s", after)
	}
	d.dirty = true
}

// curve returns the current preset with P1/P2 displaced by the animation phase.
func (d *demo) curve() gfx.Curve {
	c := presets[d.preset].curve
	if !d.animate {
		return c
	}
	phase := float64(d.now) / msPerRadian
	dy := int(math.Round(swing * math.Sin(phase)))
	dx := int(math.Round(swing / 2 * math.Cos(phase)))
	c.P1.X += dx
	c.P1.Y += dy
	c.P2.X -= dx
	c.P2.Y -= dy
	return c
}

func (d *demo) render() error {
	c := d.curve()
	d.surf.ResetStats()
	d.fb.ClearRGB(colorBG.R, colorBG.G, colorBG.B)
	if err := d.console.drawTo(d.fb, d.consoleY()); err != nil {
		return err
	}

	var drawErr error
	gfx.Batch(d.surf, func() {
		d.surf.DrawLine(c.P0.X, c.P0.Y, c.P1.X, c.P1.Y, colorHandle)
		d.surf.DrawLine(c.P3.X, c.P3.Y, c.P2.X, c.P2.Y, colorHandle)

		if d.fill {
			drawErr = gfx.FillBezier(d.surf, c, d.resolution, colorFill)
		} else {
			drawErr = gfx.DrawBezier(d.surf, c, d.resolution, colorCurve)
		}

		for _, p := range [...]gfx.Point{c.P0, c.P1, c.P2, c.P3} {
			d.marker(p)
		}
		d.labels()
	})
	if drawErr != nil {
		return drawErr
	}
	if err := d.surf.Err(); err != nil && err != d.err {
		d.err = err
		d.logf("display error: %v", err)
	}
	return nil
}

// consoleY places the log console just above the key hint line.
func (d *demo) consoleY() int {
	if d.console == nil {
		return d.fb.Height()
	}
	return d.fb.Height() - int(d.lineH) - 4 - d.console.height()
}

// marker draws a 5x5 square as two triangles.
func (d *demo) marker(p gfx.Point) {
	d.surf.FillTriangle(p.X-2, p.Y-2, p.X+2, p.Y-2, p.X+2, p.Y+2, colorPoint)
	d.surf.FillTriangle(p.X-2, p.Y-2, p.X-2, p.Y+2, p.X+2, p.Y+2, colorPoint)
}

func (d *demo) labels() {
	st := d.surf.Stats()
	y := d.lineH + 2
	tinyfont.WriteLine(d.disp, d.font, 4, y, d.describe(), colorText)
	y += d.lineH
	tinyfont.WriteLine(d.disp, d.font, 4, y, fmt.Sprintf("lines=%d tris=%d", st.Lines, st.Triangles), colorText)

	hint := "up/down res  enter fill  </> preset  tab anim"
	_, outbox := tinyfont.LineWidth(d.font, hint)
	x := int16(4)
	if w := int16(d.fb.Width()); int16(outbox) < w-8 {
		x = (w - int16(outbox)) / 2
	}
	tinyfont.WriteLine(d.disp, d.font, x, int16(d.fb.Height())-4, hint, colorHint)
}
