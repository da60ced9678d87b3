package gfx

import "image/color"

// Surface is the drawing target used by the curve rasterizer.
//
// Coordinates are pixels. Colours are passed through untouched.
type Surface interface {
	// BeginBatch starts a grouped update. Every BeginBatch is paired with exactly
	// one EndBatch.
	BeginBatch()
	// EndBatch ends the grouped update started by the matching BeginBatch.
	EndBatch()

	DrawLine(x0, y0, x1, y1 int, c color.RGBA)
	// FillTriangle fills the triangle regardless of vertex winding.
	FillTriangle(x0, y0, x1, y1, x2, y2 int, c color.RGBA)
}

// Batch runs fn inside a BeginBatch/EndBatch pair. EndBatch runs even if fn panics.
func Batch(s Surface, fn func()) {
	s.BeginBatch()
	defer s.EndBatch()
	fn()
}
