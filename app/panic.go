package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"

	"sparkdraw/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// guardStep turns a panic inside step into an error after logging it and painting a
// panic screen, so the host runner exits cleanly instead of crashing the window.
func guardStep(h hal.HAL, step func() error) func() error {
	return func() (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			stack := debug.Stack()
			logPanic(h.Logger(), r, stack)
			paintPanic(h.Display(), r)
			err = fmt.Errorf("bezdemo: panic: %v", r)
		}()
		return step()
	}
}

func logPanic(l hal.Logger, v any, stack []byte) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf("bezdemo: panic=%v", v))
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		l.WriteLineString(line)
	}
}

func paintPanic(disp hal.Display, v any) {
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	fb.ClearRGB(255, 255, 255)

	d := hal.NewFramebufferDisplayer(fb)
	font := &proggy.TinySZ8pt7b
	fg := color.RGBA{A: 255}
	lineH := int16(font.GetYAdvance())
	if lineH <= 0 {
		lineH = 10
	}

	y := lineH
	for _, line := range []string{"Spark draw panic:", fmt.Sprintf("%v", v)} {
		tinyfont.WriteLine(d, font, 4, y, line, fg)
		y += lineH
	}
	_ = d.Display()
}
