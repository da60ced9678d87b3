//go:build !tinygo

// Command bezrender draws one cubic Bezier curve into an RGB565 framebuffer and writes
// it out as a PNG.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"sparkdraw/hal"
	"sparkdraw/internal/buildinfo"
	"sparkdraw/sparkos/gfx"

	xdraw "golang.org/x/image/draw"
)

const (
	defaultWidth  = 320
	defaultHeight = 200
	maxScale      = 16
)

var errUsage = errors.New("usage")

type options struct {
	curve   gfx.Curve
	res     int
	fill    bool
	fg      color.RGBA
	bg      color.RGBA
	width   int
	height  int
	scale   int
	out     string
	verbose bool
}

// pointFlag parses "x,y".
type pointFlag struct{ p *gfx.Point }

func (f pointFlag) String() string {
	if f.p == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d", f.p.X, f.p.Y)
}

func (f pointFlag) Set(s string) error {
	p, err := parsePoint(s)
	if err != nil {
		return err
	}
	*f.p = p
	return nil
}

// colorFlag parses "rrggbb" with an optional leading '#'.
type colorFlag struct{ c *color.RGBA }

func (f colorFlag) String() string {
	if f.c == nil {
		return ""
	}
	return fmt.Sprintf("%02x%02x%02x", f.c.R, f.c.G, f.c.B)
}

func (f colorFlag) Set(s string) error {
	c, err := parseColor(s)
	if err != nil {
		return err
	}
	*f.c = c
	return nil
}

func parsePoint(s string) (gfx.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return gfx.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return gfx.Point{}, fmt.Errorf("point %q: x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return gfx.Point{}, fmt.Errorf("point %q: y: %w", s, err)
	}
	return gfx.Pt(x, y), nil
}

func parseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size %q: width: %w", s, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size %q: height: %w", s, err)
	}
	if w <= 0 || h <= 0 || w > 4096 || h > 4096 {
		return 0, 0, fmt.Errorf("size %q: out of range", s)
	}
	return w, h, nil
}

func parseArgs(args []string, stderr io.Writer) (options, bool, error) {
	opts := options{
		curve: gfx.Curve{P0: gfx.Pt(0, 100), P1: gfx.Pt(100, 50), P2: gfx.Pt(200, 150), P3: gfx.Pt(300, 100)},
		fg:    color.RGBA{R: 0xFF, A: 0xFF},
		bg:    color.RGBA{A: 0xFF},
	}
	var size string
	var version bool

	fs := flag.NewFlagSet("bezrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(pointFlag{&opts.curve.P0}, "p0", "Start point x,y.")
	fs.Var(pointFlag{&opts.curve.P1}, "p1", "First control point x,y.")
	fs.Var(pointFlag{&opts.curve.P2}, "p2", "Second control point x,y.")
	fs.Var(pointFlag{&opts.curve.P3}, "p3", "End point x,y.")
	fs.IntVar(&opts.res, "res", 10, "Resolution (number of steps, >= 1).")
	fs.BoolVar(&opts.fill, "fill", false, "Fill the curve instead of stroking it.")
	fs.Var(colorFlag{&opts.fg}, "color", "Curve colour rrggbb.")
	fs.Var(colorFlag{&opts.bg}, "bg", "Background colour rrggbb.")
	fs.StringVar(&size, "size", fmt.Sprintf("%dx%d", defaultWidth, defaultHeight), "Framebuffer size WxH.")
	fs.IntVar(&opts.scale, "scale", 1, "Integer upscale factor for the PNG.")
	fs.StringVar(&opts.out, "o", "curve.png", "Output PNG path.")
	fs.BoolVar(&opts.verbose, "v", false, "Print samples and draw stats to stderr.")
	fs.BoolVar(&version, "version", false, "Print version and exit.")
	if err := fs.Parse(args); err != nil {
		return opts, false, fmt.Errorf("%w: %w", errUsage, err)
	}
	if version {
		return opts, true, nil
	}

	if err := checkOptions(&opts, size); err != nil {
		fs.Usage()
		return opts, false, fmt.Errorf("%w: %w", errUsage, err)
	}
	return opts, false, nil
}

func checkOptions(opts *options, size string) error {
	var err error
	if opts.width, opts.height, err = parseSize(size); err != nil {
		return err
	}
	if opts.scale < 1 || opts.scale > maxScale {
		return fmt.Errorf("-scale must be in 1..%d", maxScale)
	}
	if opts.out == "" {
		return errors.New("-o is required")
	}
	return nil
}

func main() {
	opts, version, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(2)
	}
	if version {
		fmt.Println("bezrender", buildinfo.Long())
		return
	}
	if err := run(opts, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run renders into memory first so a failed render leaves an existing output
// file untouched.
func run(opts options, stderr io.Writer) error {
	var buf bytes.Buffer
	if err := renderPNG(&buf, opts, stderr); err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", opts.out, err)
	}
	return nil
}

func render(opts options, stderr io.Writer) (*image.RGBA, error) {
	fb := hal.NewFramebuffer(opts.width, opts.height)
	if fb.Width() == 0 {
		return nil, fmt.Errorf("framebuffer %dx%d: invalid size", opts.width, opts.height)
	}
	fb.ClearRGB(opts.bg.R, opts.bg.G, opts.bg.B)

	if !opts.curve.Bounds().In(image.Rect(0, 0, opts.width, opts.height)) {
		fmt.Fprintf(stderr, "warning: curve bounds %v exceed %dx%d, output is clipped\n", opts.curve.Bounds(), opts.width, opts.height)
	}

	surf := gfx.NewDisplayerSurface(hal.NewFramebufferDisplayer(fb))
	draw := gfx.DrawBezier
	if opts.fill {
		draw = gfx.FillBezier
	}
	if err := draw(surf, opts.curve, opts.res, opts.fg); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := surf.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	if opts.verbose {
		samples, err := gfx.AppendSamples(nil, opts.curve, opts.res)
		if err != nil {
			return nil, fmt.Errorf("samples: %w", err)
		}
		for i, s := range samples {
			fmt.Fprintf(stderr, "sample %3d: %8.3f %8.3f\n", i, s.X, s.Y)
		}
		st := surf.Stats()
		fmt.Fprintf(stderr, "lines=%d triangles=%d flushes=%d\n", st.Lines, st.Triangles, st.Flushes)
	}

	return fb.SnapshotRGBA(nil), nil
}

func renderPNG(w io.Writer, opts options, stderr io.Writer) error {
	img, err := render(opts, stderr)
	if err != nil {
		return err
	}
	var out image.Image = img
	if opts.scale > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*opts.scale, b.Dy()*opts.scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
		out = dst
	}
	if err := png.Encode(w, out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
