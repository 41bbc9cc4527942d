// Package fx holds full-face effects.
package fx

import (
	"math"

	"dial/deadline"
	"dial/face/gfx"
	"dial/face/theme"
)

// StarburstConfig shapes the starburst.
type StarburstConfig struct {
	Rays    int
	Steps   int
	FrameMs uint32
}

// Starburst shoots rays out from the centre to the rim and pulls them back in.
// Rays alternate between the theme's primary and accent colours. Each frame
// draws the rays at the new length and paints the previous length in the
// background colour, frame by frame on a deadline so the loop keeps running.
type Starburst struct {
	s   gfx.Surface
	cfg StarburstConfig

	active  bool
	frame   int
	prevLen int
	th      theme.Theme
	next    deadline.Timer
}

// NewStarburst returns an idle effect.
func NewStarburst(s gfx.Surface, cfg StarburstConfig) *Starburst {
	if cfg.Steps < 1 {
		cfg.Steps = 1
	}
	if cfg.Rays < 1 {
		cfg.Rays = 1
	}
	return &Starburst{s: s, cfg: cfg}
}

// Active reports whether the effect is running.
func (b *Starburst) Active() bool { return b.active }

// Start draws the first frame now.
func (b *Starburst) Start(now uint32, th theme.Theme) {
	b.active = true
	b.th = th
	b.frame = 0
	b.prevLen = 0
	b.draw(0)
	b.next.Arm(now, b.cfg.FrameMs)
}

// Step advances one frame when due. It reports true once, a frame after the
// rays are fully retracted; the caller then repaints the face.
func (b *Starburst) Step(now uint32) (done bool) {
	if !b.active || !b.next.Fire(now) {
		return false
	}
	if b.frame == b.frames()-1 {
		b.active = false
		return true
	}
	b.frame++
	b.draw(b.frame)
	b.next.Arm(now, b.cfg.FrameMs)
	return false
}

// frames is the expansion (1..Steps) plus the retraction (Steps..0).
func (b *Starburst) frames() int { return 2*b.cfg.Steps + 1 }

func (b *Starburst) draw(frame int) {
	c := gfx.Center(b.s)
	outer := min(c.X, c.Y) - 1
	steps := b.cfg.Steps
	if frame < steps {
		n := outer * (frame + 1) / steps
		b.rays(c.X, c.Y, n, false)
		if b.prevLen > 0 {
			b.rays(c.X, c.Y, b.prevLen, true)
		}
		b.prevLen = n
		return
	}
	n := outer * (2*steps - frame) / steps
	b.rays(c.X, c.Y, b.prevLen, true)
	b.rays(c.X, c.Y, n, false)
	b.prevLen = n
}

func (b *Starburst) rays(cx, cy, n int, erase bool) {
	for i := 0; i < b.cfg.Rays; i++ {
		a := 2 * math.Pi * float64(i) / float64(b.cfg.Rays)
		x := cx + int(math.Cos(a)*float64(n))
		y := cy + int(math.Sin(a)*float64(n))
		col := b.th.Primary
		switch {
		case erase:
			col = b.th.BG
		case i%2 == 1:
			col = b.th.Accent
		}
		b.s.DrawLine(cx, cy, x, y, col)
	}
}
