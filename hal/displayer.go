package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// FramebufferDisplayer exposes an RGB565 Framebuffer as a drivers.Displayer so that
// tinyfont, tinyterm and the gfx surfaces can draw into it. Display presents the
// framebuffer.
//
// SetScroll records a vertical scroll start the way ILI9341-class panels do; DrawTo
// applies it when the framebuffer is shown inside another one.
type FramebufferDisplayer struct {
	fb     Framebuffer
	scroll int
}

var _ drivers.Displayer = (*FramebufferDisplayer)(nil)

func NewFramebufferDisplayer(fb Framebuffer) *FramebufferDisplayer {
	return &FramebufferDisplayer{fb: fb}
}

func (d *FramebufferDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *FramebufferDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	w := d.fb.Width()
	h := d.fb.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	pixel := rgb565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *FramebufferDisplayer) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *FramebufferDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil {
		return nil
	}
	if d.fb.Format() != PixelFormatRGB565 {
		return ErrUnsupportedFormat
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *FramebufferDisplayer) SetScroll(line int16) {
	if d.fb == nil || d.fb.Height() <= 0 {
		return
	}
	h := d.fb.Height()
	d.scroll = (int(line)%h + h) % h
}

// Scroll returns the framebuffer row shown at the top.
func (d *FramebufferDisplayer) Scroll() int16 { return int16(d.scroll) }

// DrawTo copies the framebuffer into dst with its top-left corner at (x, y),
// starting from the scroll row and wrapping around. Pixels outside dst are dropped.
func (d *FramebufferDisplayer) DrawTo(dst Framebuffer, x, y int) error {
	if d.fb == nil || dst == nil {
		return nil
	}
	if d.fb.Format() != PixelFormatRGB565 || dst.Format() != PixelFormatRGB565 {
		return ErrUnsupportedFormat
	}
	src, out := d.fb.Buffer(), dst.Buffer()
	w, h := d.fb.Width(), d.fb.Height()
	if src == nil || out == nil || w <= 0 || h <= 0 {
		return nil
	}

	x0 := clampInt(x, 0, dst.Width())
	x1 := clampInt(x+w, 0, dst.Width())
	if x0 >= x1 {
		return nil
	}
	for row := 0; row < h; row++ {
		dy := y + row
		if dy < 0 || dy >= dst.Height() {
			continue
		}
		sy := (row + d.scroll) % h
		so := sy*d.fb.StrideBytes() + (x0-x)*2
		do := dy*dst.StrideBytes() + x0*2
		n := (x1 - x0) * 2
		if so+n > len(src) || do+n > len(out) {
			continue
		}
		copy(out[do:do+n], src[so:so+n])
	}
	return nil
}

func (d *FramebufferDisplayer) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return ErrNotImplemented
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
