package gfx

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

var (
	// ErrInvalidResolution is returned for a resolution below 1.
	ErrInvalidResolution = errors.New("gfx: resolution must be positive")
	// ErrNoSurface is returned when drawing onto a nil Surface.
	ErrNoSurface = errors.New("gfx: nil surface")
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Sample is a point on the curve before it is narrowed to pixels.
type Sample struct {
	X, Y float64
}

// pixel rounds to the nearest pixel so that values like 4.9999999 from the
// polynomial land on 5.
func (s Sample) pixel() (x, y int) { return int(math.Round(s.X)), int(math.Round(s.Y)) }

// Curve is a cubic Bezier curve. P0 and P3 are the endpoints, P1 and P2 the off-curve
// control points.
type Curve struct {
	P0, P1, P2, P3 Point
}

// Eval returns the point at parameter t using the Bernstein form.
func (c Curve) Eval(t float64) Sample {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * t * mt * mt
	d := 3 * t * t * mt
	e := t * t * t
	return Sample{
		X: a*float64(c.P0.X) + b*float64(c.P1.X) + d*float64(c.P2.X) + e*float64(c.P3.X),
		Y: a*float64(c.P0.Y) + b*float64(c.P1.Y) + d*float64(c.P2.Y) + e*float64(c.P3.Y),
	}
}

// Reverse returns the same curve traced from P3 to P0.
func (c Curve) Reverse() Curve {
	return Curve{P0: c.P3, P1: c.P2, P2: c.P1, P3: c.P0}
}

// Bounds returns the bounding box of the control points. The curve never leaves it.
func (c Curve) Bounds() image.Rectangle {
	r := image.Rectangle{Min: image.Pt(c.P0.X, c.P0.Y), Max: image.Pt(c.P0.X, c.P0.Y)}
	for _, p := range [...]Point{c.P1, c.P2, c.P3} {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	r.Max.X++
	r.Max.Y++
	return r
}

// walk visits consecutive samples for t = 0, 1/resolution, ... while t < 1 and
// returns the last one. step is not called for the first sample.
//
// t accumulates in floating point, so the loop may run one step more or less than
// resolution. Callers close the curve on P3 themselves.
func (c Curve) walk(resolution int, step func(prev, cur Sample)) Sample {
	dt := 1.0 / float64(resolution)
	var prev Sample
	first := true
	for t := 0.0; t < 1.0; t += dt {
		cur := c.Eval(t)
		if !first {
			step(prev, cur)
		}
		first = false
		prev = cur
	}
	return prev
}

func checkResolution(resolution int) error {
	if resolution < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidResolution, resolution)
	}
	return nil
}

// rasterize validates the request, then walks the curve inside one batch: step for
// every pair of consecutive samples and closing once with the last sample.
func rasterize(s Surface, c Curve, resolution int, step func(prev, cur Sample), closing func(last Sample)) error {
	if s == nil {
		return ErrNoSurface
	}
	if err := checkResolution(resolution); err != nil {
		return err
	}
	Batch(s, func() {
		closing(c.walk(resolution, step))
	})
	return nil
}

// DrawBezier strokes c as a polyline of resolution segments.
//
// The last segment always ends on c.P3 exactly. Resolution must be at least 1;
// otherwise ErrInvalidResolution is returned and s is not touched.
//
// Example:
//
//	gfx.DrawBezier(s, gfx.Curve{gfx.Pt(0, 100), gfx.Pt(100, 50), gfx.Pt(200, 150), gfx.Pt(300, 100)}, 10, red)
func DrawBezier(s Surface, c Curve, resolution int, col color.RGBA) error {
	return rasterize(s, c, resolution,
		func(prev, cur Sample) {
			x0, y0 := prev.pixel()
			x1, y1 := cur.pixel()
			s.DrawLine(x0, y0, x1, y1, col)
		},
		func(last Sample) {
			x, y := last.pixel()
			s.DrawLine(x, y, c.P3.X, c.P3.Y, col)
		},
	)
}

// FillBezier fills the area between c and P0 with a triangle fan anchored at c.P0.
//
// Each step fills (previous sample, sample, P0); the fan is closed with
// (P0, last sample, P3). This approximates the region bounded by the curve and its
// chord; it is not an exact fill. Resolution rules are the same as for DrawBezier.
func FillBezier(s Surface, c Curve, resolution int, col color.RGBA) error {
	return rasterize(s, c, resolution,
		func(prev, cur Sample) {
			x0, y0 := prev.pixel()
			x1, y1 := cur.pixel()
			s.FillTriangle(x0, y0, x1, y1, c.P0.X, c.P0.Y, col)
		},
		func(last Sample) {
			x, y := last.pixel()
			s.FillTriangle(c.P0.X, c.P0.Y, x, y, c.P3.X, c.P3.Y, col)
		},
	)
}

// AppendSamples appends the points DrawBezier would connect, ending with P3, and
// returns the extended slice.
func AppendSamples(dst []Sample, c Curve, resolution int) ([]Sample, error) {
	if err := checkResolution(resolution); err != nil {
		return dst, err
	}
	dst = append(dst, c.Eval(0))
	c.walk(resolution, func(_, cur Sample) {
		dst = append(dst, cur)
	})
	dst = append(dst, Sample{X: float64(c.P3.X), Y: float64(c.P3.Y)})
	return dst, nil
}
