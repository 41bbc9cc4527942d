package hal

import (
	"sync/atomic"
	"time"
)

// ManualClock is a Clock advanced explicitly, for deterministic runs and tests.
type ManualClock struct {
	now atomic.Uint32
}

// NewManualClock returns a clock reading start.
func NewManualClock(start uint32) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

func (c *ManualClock) NowMillis() uint32 { return c.now.Load() }

// Advance moves the clock forward by ms, wrapping at 2^32.
func (c *ManualClock) Advance(ms uint32) { c.now.Add(ms) }

// Set jumps the clock to ms.
func (c *ManualClock) Set(ms uint32) { c.now.Store(ms) }

type wallClock struct {
	start time.Time
}

func newWallClock() *wallClock { return &wallClock{start: time.Now()} }

func (c *wallClock) NowMillis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
