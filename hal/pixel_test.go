package hal

import (
	"errors"
	"image"
	"testing"
)

func TestRGB565RoundTripPrimaries(t *testing.T) {
	cases := []struct{ r, g, b uint8 }{
		{0, 0, 0},
		{0xFF, 0, 0},
		{0, 0xFF, 0},
		{0, 0, 0xFF},
		{0xFF, 0xFF, 0xFF},
	}
	for _, c := range cases {
		r, g, b := rgb888From565(rgb565(c.r, c.g, c.b))
		if r != c.r || g != c.g || b != c.b {
			t.Fatalf("round trip %v -> (%d,%d,%d)", c, r, g, b)
		}
	}
}

func TestSnapshotRGBA(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.ClearRGB(0, 0, 0xFF)
	NewFramebufferDisplayer(fb).SetPixel(2, 1, red)

	img, err := SnapshotRGBA(fb, nil)
	if err != nil {
		t.Fatalf("SnapshotRGBA: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got.B != 0xFF || got.R != 0 || got.A != 0xFF {
		t.Fatalf("pixel (0,0) = %v, want blue", got)
	}
	if got := img.RGBAAt(2, 1); got.R != 0xFF || got.B != 0 {
		t.Fatalf("pixel (2,1) = %v, want red", got)
	}

	again := fb.SnapshotRGBA(img)
	if again != img {
		t.Fatal("expected destination image to be reused")
	}
}

func TestSnapshotRGBARejectsNil(t *testing.T) {
	if _, err := SnapshotRGBA(nil, nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNewFramebufferInvalidSize(t *testing.T) {
	fb := NewFramebuffer(-1, 10)
	if fb.Width() != 0 || fb.Height() != 0 || len(fb.Buffer()) != 0 {
		t.Fatalf("expected empty framebuffer, got %dx%d", fb.Width(), fb.Height())
	}
	fb.ClearRGB(1, 2, 3)
}
