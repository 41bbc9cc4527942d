// Package ring draws the dial face: a circle of tick marks with the lit
// share following the brightness, the percentage above the centre, and the
// instruction label.
package ring

import (
	"fmt"
	"math"

	"dial/face/gfx"
	"dial/face/theme"
)

// Config shapes the tick ring.
type Config struct {
	Ticks      int
	StartDeg   float64
	SweepDeg   float64
	MajorLen   int
	MinorLen   int
	MajorEvery int
	// EdgeMargin insets the outer tick ends from the panel edge.
	EdgeMargin int
	// Dim is the brightness factor for unlit ticks, 0..1.
	Dim float32
}

// Renderer redraws the ring only when its inputs change. Hooks registered
// with OnRedraw run after every redraw, in order, so that overlays captured
// over the old face can be repaired.
type Renderer struct {
	s   gfx.Surface
	cfg Config

	lastPct   int
	lastTheme int
	hooks     []func()
}

// New returns a renderer with an empty cache, so the first Draw always draws.
func New(s gfx.Surface, cfg Config) *Renderer {
	if cfg.Ticks < 1 {
		cfg.Ticks = 1
	}
	if cfg.MajorEvery < 1 {
		cfg.MajorEvery = 1
	}
	return &Renderer{s: s, cfg: cfg, lastPct: -1, lastTheme: -1}
}

// OnRedraw adds fn to the hooks run after each redraw.
func (r *Renderer) OnRedraw(fn func()) {
	r.hooks = append(r.hooks, fn)
}

// Invalidate forgets the cache so the next Draw redraws.
func (r *Renderer) Invalidate() {
	r.lastPct = -1
	r.lastTheme = -1
}

// Lit is the number of highlighted ticks for pct, rounded to the nearest tick.
func (r *Renderer) Lit(pct int) int {
	lit := int(float64(r.cfg.Ticks)*float64(pct)/100 + 0.5)
	return max(0, min(lit, r.cfg.Ticks))
}

// Draw redraws the ring for brightness pct in theme themeIdx when forced or
// when either differs from the last drawn values. It reports whether it drew.
func (r *Renderer) Draw(pct, themeIdx int, force bool) bool {
	if !force && pct == r.lastPct && themeIdx == r.lastTheme {
		return false
	}
	th := theme.At(themeIdx)
	c := gfx.Center(r.s)
	outer := min(c.X, c.Y) - r.cfg.EdgeMargin

	r.s.FillCircle(c.X, c.Y, outer+2, th.BG)

	unlit := th.Text.Dim(r.cfg.Dim)
	for i := 0; i < r.cfg.Ticks; i++ {
		r.tick(c.X, c.Y, outer, i, unlit)
	}
	lit := r.Lit(pct)
	for i := 0; i < lit; i++ {
		r.tick(c.X, c.Y, outer, i, th.Primary)
	}

	gfx.DrawTextCentered(r.s, gfx.FontLarge, c.X, c.Y-40, fmt.Sprintf("%d%%", pct), th.Primary, th.BG)

	r.lastPct = pct
	r.lastTheme = themeIdx
	for _, fn := range r.hooks {
		fn()
	}
	return true
}

func (r *Renderer) tick(cx, cy, outer, i int, col gfx.Color) {
	deg := r.cfg.StartDeg + r.cfg.SweepDeg*float64(i)/float64(r.cfg.Ticks)
	a := deg * math.Pi / 180
	n := r.cfg.MinorLen
	if i%r.cfg.MajorEvery == 0 {
		n = r.cfg.MajorLen
	}
	cos, sin := math.Cos(a), math.Sin(a)
	x1 := cx + int(cos*float64(outer))
	y1 := cy + int(sin*float64(outer))
	x0 := cx + int(cos*float64(outer-n))
	y0 := cy + int(sin*float64(outer-n))
	r.s.DrawLine(x0, y0, x1, y1, col)
}
