//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig

	Enabled bool
	Hz      int
	// Ticks stops the run after this many steps; 0 runs until cancelled.
	Ticks uint64
	// Virtual drives a ManualClock by 1000/Hz per tick instead of sleeping,
	// so a run is reproducible and as fast as the CPU allows.
	Virtual bool
	// Script, when set, replays recorded input. Without a tick limit the run
	// ends once the script is consumed.
	Script *Script
	// InputDevices are Linux evdev nodes merged into the input state.
	InputDevices []string
	// GrabInput takes exclusive access to InputDevices.
	GrabInput bool
	// Fbdev is a Linux framebuffer device the display is mirrored onto.
	Fbdev string
	// Done is called with the HAL after the last step, before devices close.
	Done func(HAL) error
}

// RunHeadless runs the dial without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	period := time.Second / time.Duration(cfg.Hz)
	if period <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	var vclock *ManualClock
	if cfg.Virtual {
		if cfg.Ticks == 0 && cfg.Script == nil {
			return errors.New("virtual clock needs a tick limit or a script")
		}
		vclock = NewManualClock(0)
		cfg.Host.Clock = vclock
	}

	h := newHost(cfg.Host)
	fb := h.disp.Mem()

	if cfg.Fbdev != "" {
		out, err := openFbdev(cfg.Fbdev, h.disp)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	if len(cfg.InputDevices) > 0 {
		ev, err := openEvdev(h.in, cfg.InputDevices, fb.Width(), fb.Height(), cfg.GrabInput)
		if err != nil {
			return err
		}
		defer ev.Close()
	}

	step := newApp(h)

	var tick uint64
	runOnce := func() (bool, error) {
		if cfg.Script != nil {
			cfg.Script.apply(h.in, h.clock.NowMillis())
		}
		h.Sample()
		if step != nil {
			if err := step(); err != nil {
				return true, err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return true, nil
		}
		if cfg.Ticks == 0 && cfg.Script != nil && cfg.Script.Finished() {
			return true, nil
		}
		return false, nil
	}

	var err error
	if vclock != nil {
		vstep := uint32(1000 / cfg.Hz)
		if vstep == 0 {
			vstep = 1
		}
		for {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			var done bool
			done, err = runOnce()
			if done {
				break
			}
			vclock.Advance(vstep)
		}
	} else {
		t := time.NewTicker(period)
		defer t.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				var done bool
				done, err = runOnce()
				if done {
					break loop
				}
			}
		}
	}
	if err != nil {
		return err
	}
	if cfg.Done != nil {
		return cfg.Done(h)
	}
	return nil
}
