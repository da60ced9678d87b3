package hal

import (
	"errors"
	"image/color"
	"testing"

	"tinygo.org/x/drivers"
)

var red = color.RGBA{R: 0xFF, A: 0xFF}

func pixelAt(fb *MemFramebuffer, x, y int) uint16 {
	off := y*fb.StrideBytes() + x*2
	buf := fb.Buffer()
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func TestFramebufferDisplayerSetPixelClips(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	d := NewFramebufferDisplayer(fb)
	d.SetPixel(-1, 0, red)
	d.SetPixel(4, 4, red)
	d.SetPixel(1, 2, red)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint16(0)
			if x == 1 && y == 2 {
				want = rgb565(0xFF, 0, 0)
			}
			if got := pixelAt(fb, x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %#04x, want %#04x", x, y, got, want)
			}
		}
	}
}

func TestFramebufferDisplayerFillRectangleClamps(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	d := NewFramebufferDisplayer(fb)
	if err := d.FillRectangle(-2, 2, 10, 10, red); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			lit := pixelAt(fb, x, y) != 0
			if lit != (y >= 2) {
				t.Fatalf("pixel (%d,%d) lit=%v", x, y, lit)
			}
		}
	}
}

func TestFramebufferDisplayerDisplayPresents(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	d := NewFramebufferDisplayer(fb)
	if w, h := d.Size(); w != 2 || h != 2 {
		t.Fatalf("Size = %dx%d", w, h)
	}
	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if fb.Frames() != 1 {
		t.Fatalf("expected 1 frame, got %d", fb.Frames())
	}
}

func TestFramebufferDisplayerRotation(t *testing.T) {
	d := NewFramebufferDisplayer(NewFramebuffer(2, 2))
	if err := d.SetRotation(drivers.Rotation0); err != nil {
		t.Fatalf("Rotation0: %v", err)
	}
	if err := d.SetRotation(drivers.Rotation90); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

func TestFramebufferDisplayerDrawToAppliesScroll(t *testing.T) {
	src := NewFramebuffer(2, 3)
	d := NewFramebufferDisplayer(src)
	d.SetPixel(0, 0, red)
	d.SetPixel(1, 2, color.RGBA{G: 0xFF, A: 0xFF})

	d.SetScroll(-1)
	if got := d.Scroll(); got != 2 {
		t.Fatalf("Scroll = %d, want 2", got)
	}

	dst := NewFramebuffer(4, 4)
	if err := d.DrawTo(dst, 1, 1); err != nil {
		t.Fatalf("DrawTo: %v", err)
	}
	// Row 2 is shown first, then rows 0 and 1.
	if got := pixelAt(dst, 2, 1); got != rgb565(0, 0xFF, 0) {
		t.Fatalf("pixel (2,1) = %#04x, want green", got)
	}
	if got := pixelAt(dst, 1, 2); got != rgb565(0xFF, 0, 0) {
		t.Fatalf("pixel (1,2) = %#04x, want red", got)
	}
	if got := pixelAt(dst, 0, 0); got != 0 {
		t.Fatalf("pixel outside the copy was written: %#04x", got)
	}
}

func TestFramebufferDisplayerDrawToClips(t *testing.T) {
	src := NewFramebuffer(3, 3)
	d := NewFramebufferDisplayer(src)
	if err := d.FillRectangle(0, 0, 3, 3, red); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	dst := NewFramebuffer(2, 2)
	if err := d.DrawTo(dst, -2, 1); err != nil {
		t.Fatalf("DrawTo: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			lit := pixelAt(dst, x, y) != 0
			if lit != (x == 0 && y == 1) {
				t.Fatalf("pixel (%d,%d) lit=%v", x, y, lit)
			}
		}
	}
}
