package gfx

import (
	"image/color"
	"math"
	"sort"

	"tinygo.org/x/drivers"
)

// rectFiller is implemented by most TinyGo display drivers and by the HAL
// framebuffer displayer. Horizontal spans go through it when available.
type rectFiller interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Stats counts the work done by a DisplayerSurface.
type Stats struct {
	Lines     uint64
	Triangles uint64
	Batches   uint64
	Flushes   uint64
}

// DisplayerSurface rasterizes lines and triangles onto a drivers.Displayer.
//
// Batches nest; only the outermost EndBatch calls Display on the driver. A
// DisplayerSurface is not safe for concurrent use.
type DisplayerSurface struct {
	d    drivers.Displayer
	rect rectFiller

	w int
	h int

	depth int
	stats Stats
	err   error
}

var _ Surface = (*DisplayerSurface)(nil)

func NewDisplayerSurface(d drivers.Displayer) *DisplayerSurface {
	s := &DisplayerSurface{d: d}
	if rf, ok := d.(rectFiller); ok {
		s.rect = rf
	}
	s.refreshSize()
	return s
}

func (s *DisplayerSurface) refreshSize() {
	if s.d == nil {
		s.w, s.h = 0, 0
		return
	}
	w, h := s.d.Size()
	s.w, s.h = int(w), int(h)
}

// Size returns the drawable area in pixels.
func (s *DisplayerSurface) Size() (w, h int) { return s.w, s.h }

// Stats returns the counters accumulated since creation or the last ResetStats.
func (s *DisplayerSurface) Stats() Stats { return s.stats }

func (s *DisplayerSurface) ResetStats() { s.stats = Stats{} }

// Err returns the last error reported by the driver while filling or flushing.
func (s *DisplayerSurface) Err() error { return s.err }

func (s *DisplayerSurface) BeginBatch() {
	if s.depth == 0 {
		s.refreshSize()
		s.stats.Batches++
	}
	s.depth++
}

func (s *DisplayerSurface) EndBatch() {
	if s.depth == 0 {
		return
	}
	s.depth--
	if s.depth > 0 || s.d == nil {
		return
	}
	s.stats.Flushes++
	if err := s.d.Display(); err != nil {
		s.err = err
	}
}

func (s *DisplayerSurface) setPixel(x, y int, c color.RGBA) {
	if !s.inside(x, y) {
		return
	}
	s.d.SetPixel(int16(x), int16(y), c)
}

func (s *DisplayerSurface) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	if s.d == nil {
		return
	}
	s.stats.Lines++
	if y0 == y1 {
		s.span(y0, x0, x1, c)
		return
	}
	var ok bool
	if x0, y0, x1, y1, ok = s.clipLine(x0, y0, x1, y1); !ok {
		return
	}

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		s.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

// clipLine trims the segment to the display with Liang-Barsky so the stepping loop
// only visits visible pixels. Segments already on screen are returned unchanged.
func (s *DisplayerSurface) clipLine(x0, y0, x1, y1 int) (int, int, int, int, bool) {
	if s.w <= 0 || s.h <= 0 {
		return 0, 0, 0, 0, false
	}
	if s.inside(x0, y0) && s.inside(x1, y1) {
		return x0, y0, x1, y1, true
	}
	fx, fy := float64(x0), float64(y0)
	dx, dy := float64(x1)-fx, float64(y1)-fy
	xmax, ymax := float64(s.w-1), float64(s.h-1)

	u1, u2 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{fx, xmax - fx, fy, ymax - fy}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			u1 = max(u1, t)
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			u2 = min(u2, t)
		}
	}
	return s.clampX(fx + u1*dx), s.clampY(fy + u1*dy), s.clampX(fx + u2*dx), s.clampY(fy + u2*dy), true
}

func (s *DisplayerSurface) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.w && y < s.h
}

func (s *DisplayerSurface) clampX(v float64) int { return min(max(int(math.Round(v)), 0), s.w-1) }

func (s *DisplayerSurface) clampY(v float64) int { return min(max(int(math.Round(v)), 0), s.h-1) }

type vertex struct {
	x int
	y int
}

func (s *DisplayerSurface) FillTriangle(x0, y0, x1, y1, x2, y2 int, c color.RGBA) {
	if s.d == nil {
		return
	}
	s.stats.Triangles++

	pts := [3]vertex{{x: x0, y: y0}, {x: x1, y: y1}, {x: x2, y: y2}}
	sort.Slice(pts[:], func(i, j int) bool { return pts[i].y < pts[j].y })
	top := pts[0]
	mid := pts[1]
	bot := pts[2]

	if top.y == bot.y {
		s.span(top.y, min(x0, x1, x2), max(x0, x1, x2), c)
		return
	}
	for y := max(top.y, 0); y <= bot.y && y < s.h; y++ {
		var xa float64
		if y < mid.y {
			xa = edgeX(top, mid, y)
		} else {
			xa = edgeX(mid, bot, y)
		}
		xb := edgeX(top, bot, y)
		s.span(y, int(math.Round(xa)), int(math.Round(xb)), c)
	}
}

func edgeX(a, b vertex, y int) float64 {
	if b.y == a.y {
		return float64(a.x)
	}
	t := float64(y-a.y) / float64(b.y-a.y)
	return float64(a.x) + t*float64(b.x-a.x)
}

// span fills the inclusive run xa..xb on row y, clipped to the display.
func (s *DisplayerSurface) span(y, xa, xb int, c color.RGBA) {
	if y < 0 || y >= s.h {
		return
	}
	if xa > xb {
		xa, xb = xb, xa
	}
	xa = max(xa, 0)
	xb = min(xb, s.w-1)
	if xa > xb {
		return
	}
	if s.rect != nil {
		if err := s.rect.FillRectangle(int16(xa), int16(y), int16(xb-xa+1), 1, c); err != nil {
			s.err = err
		}
		return
	}
	for x := xa; x <= xb; x++ {
		s.d.SetPixel(int16(x), int16(y), c)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
