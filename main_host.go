//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"dial/app"
	"dial/config"
	"dial/hal"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var (
		cfgPath    string
		scriptPath string
		inputs     stringList
		headless   hal.HeadlessConfig
		window     hal.WindowConfig
	)
	flag.StringVar(&cfgPath, "config", "", "YAML file overriding the default configuration.")
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&headless.Virtual, "virtual", false, "Advance a virtual clock per tick instead of sleeping (headless).")
	flag.StringVar(&scriptPath, "script", "", "Replay a YAML input script (headless).")
	flag.Var(&inputs, "input", "Linux evdev device to read (repeatable, headless).")
	flag.BoolVar(&headless.GrabInput, "grab", false, "Grab the evdev devices exclusively.")
	flag.StringVar(&headless.Fbdev, "fbdev", "", "Linux framebuffer device to mirror the display onto (headless).")
	flag.IntVar(&window.Scale, "scale", 2, "Window scale factor.")
	flag.BoolVar(&window.Round, "round", true, "Mask the window corners like the round panel.")
	flag.Parse()

	if err := run(cfgPath, scriptPath, inputs, headless, window); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgPath, scriptPath string, inputs []string, headless hal.HeadlessConfig, window hal.WindowConfig) error {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	newApp := func(h hal.HAL) func() error { return app.New(h, cfg) }

	if !headless.Enabled {
		window.Host.HoldMs = cfg.Button.HoldMs
		return hal.RunWindow(newApp, window)
	}

	if scriptPath != "" {
		s, err := hal.LoadScript(scriptPath)
		if err != nil {
			return err
		}
		headless.Script = s
	}
	headless.InputDevices = inputs
	headless.Host.HoldMs = cfg.Button.HoldMs

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return hal.RunHeadless(ctx, newApp, headless)
}
