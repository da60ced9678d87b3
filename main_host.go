//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sparkdraw/app"
	"sparkdraw/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var appCfg app.Config
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Keys, "keys", "", "Keys to type at startup in headless mode (e.g. \"f++\").")
	flag.IntVar(&appCfg.Resolution, "res", 16, "Initial curve resolution (1-256).")
	flag.BoolVar(&appCfg.Fill, "fill", false, "Start in fill mode.")
	flag.BoolVar(&appCfg.Static, "static", false, "Start with animation off.")
	flag.IntVar(&appCfg.Preset, "preset", 0, "Initial curve preset.")
	flag.Parse()

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
