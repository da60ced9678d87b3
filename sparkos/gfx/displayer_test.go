package gfx

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pixelKey struct{ X, Y int16 }

type fakeDisplay struct {
	w, h       int16
	pixels     map[pixelKey]color.RGBA
	displays   int
	sets       int
	displayErr error
}

func newFakeDisplay(w, h int16) *fakeDisplay {
	return &fakeDisplay{w: w, h: h, pixels: map[pixelKey]color.RGBA{}}
}

func (d *fakeDisplay) Size() (x, y int16) { return d.w, d.h }

func (d *fakeDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		panic("pixel outside display")
	}
	d.sets++
	d.pixels[pixelKey{x, y}] = c
}

func (d *fakeDisplay) Display() error {
	d.displays++
	return d.displayErr
}

// rectDisplay adds the FillRectangle fast path.
type rectDisplay struct {
	*fakeDisplay
	rects int
}

func (d *rectDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.rects++
	for yy := y; yy < y+height; yy++ {
		for xx := x; xx < x+width; xx++ {
			d.SetPixel(xx, yy, c)
		}
	}
	return nil
}

func (d *fakeDisplay) set() map[pixelKey]bool {
	out := make(map[pixelKey]bool, len(d.pixels))
	for k := range d.pixels {
		out[k] = true
	}
	return out
}

func TestDrawLineDiagonal(t *testing.T) {
	d := newFakeDisplay(10, 10)
	s := NewDisplayerSurface(d)
	s.DrawLine(0, 0, 3, 3, red)
	want := map[pixelKey]bool{{0, 0}: true, {1, 1}: true, {2, 2}: true, {3, 3}: true}
	if diff := cmp.Diff(want, d.set()); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawLineVerticalAndHorizontal(t *testing.T) {
	d := newFakeDisplay(10, 10)
	s := NewDisplayerSurface(d)
	s.DrawLine(2, 5, 2, 1, red)
	s.DrawLine(6, 8, 3, 8, red)
	want := map[pixelKey]bool{
		{2, 1}: true, {2, 2}: true, {2, 3}: true, {2, 4}: true, {2, 5}: true,
		{3, 8}: true, {4, 8}: true, {5, 8}: true, {6, 8}: true,
	}
	if diff := cmp.Diff(want, d.set()); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
	if got := s.Stats().Lines; got != 2 {
		t.Fatalf("expected 2 lines counted, got %d", got)
	}
}

func TestDrawLineClipsToDisplay(t *testing.T) {
	d := newFakeDisplay(4, 4)
	s := NewDisplayerSurface(d)
	s.DrawLine(-5, -5, 40000, 40000, red)
	s.DrawLine(-10, 2, 10, 2, red)
	for k := range d.pixels {
		if k.X < 0 || k.Y < 0 || k.X >= 4 || k.Y >= 4 {
			t.Fatalf("pixel outside display: %v", k)
		}
	}
	if len(d.pixels) == 0 {
		t.Fatal("expected visible part of the lines to be drawn")
	}
}

func TestDrawLineFarEndpointStepsOnlyVisiblePixels(t *testing.T) {
	d := newFakeDisplay(320, 240)
	s := NewDisplayerSurface(d)
	s.DrawLine(0, 0, 1<<30, 3, red)
	if d.sets == 0 || d.sets > 320 {
		t.Fatalf("expected at most one row of visible pixels, got %d writes", d.sets)
	}
	if _, ok := d.pixels[pixelKey{0, 0}]; !ok {
		t.Fatal("expected start pixel")
	}

	d.sets = 0
	s.DrawLine(-1<<30, -5, 1<<30, -7, red)
	s.DrawLine(-1<<30, 500, 1<<30, -1<<30+7, red)
	if d.sets > 320+240 {
		t.Fatalf("off-screen segments stepped %d pixels", d.sets)
	}
}

func TestDrawBezierFarControlPointIsBounded(t *testing.T) {
	d := newFakeDisplay(320, 240)
	s := NewDisplayerSurface(d)
	c := Curve{P0: Pt(0, 0), P1: Pt(0, 1), P2: Pt(0, 1), P3: Pt(1<<30, 3)}
	if err := DrawBezier(s, c, 4, red); err != nil {
		t.Fatalf("DrawBezier: %v", err)
	}
	if got := s.Stats().Lines; got != 4 {
		t.Fatalf("expected 4 lines, got %d", got)
	}
	if d.sets > 4*320 {
		t.Fatalf("expected clipped segments, got %d writes", d.sets)
	}
}

func TestFillTriangleOrientationAgnostic(t *testing.T) {
	a := newFakeDisplay(8, 8)
	NewDisplayerSurface(a).FillTriangle(0, 0, 4, 0, 0, 4, red)
	b := newFakeDisplay(8, 8)
	NewDisplayerSurface(b).FillTriangle(0, 4, 4, 0, 0, 0, red)

	if got := len(a.pixels); got != 15 {
		t.Fatalf("expected 15 pixels, got %d", got)
	}
	if diff := cmp.Diff(a.set(), b.set()); diff != "" {
		t.Fatalf("winding changed coverage (-cw +ccw):\n%s", diff)
	}
}

func TestFillTriangleDegenerateRow(t *testing.T) {
	d := newFakeDisplay(8, 8)
	NewDisplayerSurface(d).FillTriangle(1, 3, 1, 3, 5, 3, red)
	want := map[pixelKey]bool{{1, 3}: true, {2, 3}: true, {3, 3}: true, {4, 3}: true, {5, 3}: true}
	if diff := cmp.Diff(want, d.set()); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestFillTriangleUsesFillRectangle(t *testing.T) {
	d := &rectDisplay{fakeDisplay: newFakeDisplay(8, 8)}
	s := NewDisplayerSurface(d)
	s.FillTriangle(0, 0, 4, 0, 0, 4, red)
	if d.rects != 5 {
		t.Fatalf("expected one FillRectangle per row (5), got %d", d.rects)
	}
	if got := len(d.pixels); got != 15 {
		t.Fatalf("expected 15 pixels, got %d", got)
	}
}

func TestNestedBatchesFlushOnce(t *testing.T) {
	d := newFakeDisplay(8, 8)
	s := NewDisplayerSurface(d)
	s.BeginBatch()
	s.BeginBatch()
	s.EndBatch()
	if d.displays != 0 {
		t.Fatalf("inner EndBatch flushed")
	}
	s.EndBatch()
	s.EndBatch() // unbalanced, ignored
	if d.displays != 1 {
		t.Fatalf("expected 1 flush, got %d", d.displays)
	}
	st := s.Stats()
	if st.Batches != 1 || st.Flushes != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestDisplayErrorIsKept(t *testing.T) {
	boom := errors.New("spi timeout")
	d := newFakeDisplay(8, 8)
	d.displayErr = boom
	s := NewDisplayerSurface(d)
	if err := DrawBezier(s, Curve{P0: Pt(0, 0), P1: Pt(2, 7), P2: Pt(5, 7), P3: Pt(7, 0)}, 4, red); err != nil {
		t.Fatalf("DrawBezier: %v", err)
	}
	if !errors.Is(s.Err(), boom) {
		t.Fatalf("expected display error, got %v", s.Err())
	}
}

func TestDrawBezierOnDisplayerHitsEndpoints(t *testing.T) {
	d := newFakeDisplay(64, 64)
	s := NewDisplayerSurface(d)
	c := Curve{P0: Pt(2, 60), P1: Pt(10, 0), P2: Pt(50, 0), P3: Pt(61, 60)}
	if err := DrawBezier(s, c, 12, red); err != nil {
		t.Fatalf("DrawBezier: %v", err)
	}
	for _, p := range []Point{c.P0, c.P3} {
		if _, ok := d.pixels[pixelKey{int16(p.X), int16(p.Y)}]; !ok {
			t.Fatalf("endpoint %v not drawn", p)
		}
	}
	if d.displays != 1 {
		t.Fatalf("expected one flush, got %d", d.displays)
	}
}
