// Package gfx draws cubic Bezier curves onto Spark display surfaces.
//
// Curves are approximated with a fixed number of steps in parameter space: a stroked
// curve becomes a polyline, a filled curve becomes a triangle fan anchored at the first
// endpoint. There is no adaptive subdivision, anti-aliasing or stroke width; the caller
// picks the resolution and pays for it in draw calls.
//
// Drawing goes through a Surface, which supplies line and triangle primitives plus
// batch hooks. DisplayerSurface implements Surface for any tinygo.org/x/drivers
// Displayer, including the HAL framebuffer and SPI panel drivers.
package gfx
