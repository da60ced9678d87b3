//go:build tinygo && pyportal

// Command bezboard draws animated Bezier curves straight onto a PyPortal's ILI9341 panel.
//
//	tinygo flash -target pyportal -tags pyportal ./cmd/bezboard
package main

import (
	"image/color"
	"machine"
	"time"

	"sparkdraw/sparkos/gfx"

	"tinygo.org/x/drivers/ili9341"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, G: 48, B: 48, A: 255}
	blue  = color.RGBA{R: 48, G: 128, B: 255, A: 255}
)

func initDisplay() *ili9341.Device {
	display := ili9341.NewParallel(
		machine.LCD_DATA0,
		machine.TFT_WR,
		machine.TFT_DC,
		machine.TFT_CS,
		machine.TFT_RESET,
		machine.TFT_RD,
	)

	backlight := machine.TFT_BACKLIGHT
	backlight.Configure(machine.PinConfig{Mode: machine.PinOutput})

	display.Configure(ili9341.Config{})
	display.SetRotation(ili9341.Rotation270)
	display.FillScreen(black)
	backlight.High()
	return display
}

func main() {
	display := initDisplay()
	surf := gfx.NewDisplayerSurface(display)
	w, h := surf.Size()

	c := gfx.Curve{
		P0: gfx.Pt(10, h-20),
		P1: gfx.Pt(w/4, 10),
		P2: gfx.Pt(3*w/4, 10),
		P3: gfx.Pt(w-10, h-20),
	}

	res := 4
	fill := false
	for {
		display.FillScreen(black)
		var err error
		if fill {
			err = gfx.FillBezier(surf, c, res, blue)
		} else {
			err = gfx.DrawBezier(surf, c, res, red)
		}
		if err != nil {
			println("bezboard:", err.Error())
			return
		}
		if err := surf.Err(); err != nil {
			println("bezboard: display:", err.Error())
		}

		time.Sleep(time.Second)
		res *= 2
		if res > 64 {
			res = 4
			fill = !fill
		}
	}
}
