package app

import (
	"time"

	"sparkdraw/hal"
)

// Config selects the initial demo state. Zero values pick the defaults.
type Config struct {
	Resolution int
	Fill       bool
	Static     bool
	Preset     int
}

const (
	defaultResolution = 16
	minResolution     = 1
	maxResolution     = 256

	frameInterval = 16 * time.Millisecond
)

func (c Config) withDefaults() Config {
	if c.Resolution == 0 {
		c.Resolution = defaultResolution
	}
	c.Resolution = clampInt(c.Resolution, minResolution, maxResolution)
	if c.Preset < 0 || c.Preset >= len(presets) {
		c.Preset = 0
	}
	return c
}

// New initializes the demo with default config and returns its step function.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig initializes the demo and returns the step function the host runner
// calls once per frame.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	d := newDemo(h, cfg)
	if d == nil {
		return func() error { return nil }
	}
	return guardStep(h, d.step)
}

// Run starts the demo and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, Config{})
}

func RunWithConfig(h hal.HAL, cfg Config) {
	step := NewWithConfig(h, cfg)
	for {
		if err := step(); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString("bezdemo: stopped: " + err.Error())
			}
			select {}
		}
		time.Sleep(frameInterval)
	}
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
