package app

import (
	"time"

	"dial/config"
	"dial/hal"
)

// Run drives the dial at hz steps per second until a step fails. It is the
// board entry point; the host runners in hal own their own loops.
func Run(h hal.HAL, cfg config.Config, hz int) error {
	if hz <= 0 {
		hz = 60
	}
	step := New(h, cfg)
	s, _ := h.(hal.Sampler)

	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()
	for range t.C {
		if s != nil {
			s.Sample()
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
