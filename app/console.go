package app

import (
	"sparkdraw/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyterm"
)

const consoleRows = 3

// console keeps the last few log lines in an off-screen terminal that is copied
// onto the frame every render.
type console struct {
	fb   *hal.MemFramebuffer
	disp *hal.FramebufferDisplayer
	term *tinyterm.Terminal
}

func newConsole(width int, font *tinyfont.Font, lineH int16) *console {
	if width <= 0 || lineH <= 0 {
		return nil
	}
	fb := hal.NewFramebuffer(width, consoleRows*int(lineH))
	c := &console{
		fb:   fb,
		disp: hal.NewFramebufferDisplayer(fb),
	}
	c.term = tinyterm.NewTerminal(c.disp)
	c.term.Configure(&tinyterm.Config{
		Font:       font,
		FontHeight: lineH,
		FontOffset: lineH - 3,
	})
	return c
}

func (c *console) height() int { return c.fb.Height() }

// println starts a new line before writing so the newest line sits on the bottom row.
func (c *console) println(s string) {
	if c == nil {
		return
	}
	_, _ = c.term.Write([]byte("\r\n" + s))
	c.term.Display()
}

func (c *console) drawTo(dst hal.Framebuffer, y int) error {
	if c == nil {
		return nil
	}
	return c.disp.DrawTo(dst, 0, y)
}
