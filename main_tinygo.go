//go:build tinygo && !baremetal

package main

import (
	"sparkdraw/app"
	"sparkdraw/hal"
)

func main() {
	app.Run(hal.New())
}
