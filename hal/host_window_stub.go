//go:build !tinygo && !cgo

package hal

import "errors"

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Host       HostConfig
	Scale      int
	WheelTicks int
	Round      bool
}

func RunWindow(_ func(h HAL) func() error, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
