package hal

import "image"

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// SnapshotRGBA converts an RGB565 framebuffer into dst, allocating a new image when dst
// is nil or has the wrong size. Alpha is always opaque.
func SnapshotRGBA(fb Framebuffer, dst *image.RGBA) (*image.RGBA, error) {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return nil, ErrUnsupportedFormat
	}
	return snapshotRGB565(fb.Buffer(), fb.Width(), fb.Height(), fb.StrideBytes(), dst), nil
}

func snapshotRGB565(src []byte, w, h, stride int, dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != w || dst.Bounds().Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	for y := 0; y < h; y++ {
		row := y * stride
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			off := row + x*2
			if off+1 >= len(src) {
				return dst
			}
			r, g, b := rgb888From565(uint16(src[off]) | uint16(src[off+1])<<8)
			j := x * 4
			out[j+0] = r
			out[j+1] = g
			out[j+2] = b
			out[j+3] = 0xFF
		}
	}
	return dst
}
