package hal

import (
	"image"
	"sync"
)

// MemFramebuffer is an in-memory RGB565 framebuffer.
//
// Present only counts frames; the host window and the PNG renderer read pixels
// through SnapshotRGBA.
type MemFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	frames uint64
}

// NewFramebuffer allocates a w x h RGB565 framebuffer. Non-positive sizes give an
// empty 0x0 framebuffer.
func NewFramebuffer(w, h int) *MemFramebuffer {
	if w <= 0 || h <= 0 {
		w, h = 0, 0
	}
	stride := w * 2
	return &MemFramebuffer{
		width:  w,
		height: h,
		stride: stride,
		buf:    make([]byte, stride*h),
	}
}

func (f *MemFramebuffer) Width() int          { return f.width }
func (f *MemFramebuffer) Height() int         { return f.height }
func (f *MemFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemFramebuffer) Buffer() []byte      { return f.buf }

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *MemFramebuffer) Present() error {
	f.mu.Lock()
	f.frames++
	f.mu.Unlock()
	return nil
}

// Frames returns how many times Present was called.
func (f *MemFramebuffer) Frames() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// SnapshotRGBA copies the current pixels into dst under the framebuffer lock.
func (f *MemFramebuffer) SnapshotRGBA(dst *image.RGBA) *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return snapshotRGB565(f.buf, f.width, f.height, f.stride, dst)
}
