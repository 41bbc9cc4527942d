package overlay

import (
	"image"
	"math"

	"dial/deadline"
	"dial/face/gfx"
)

// Crosshair is a fixed-size plus sign that follows the touch point.
type Crosshair struct {
	e      *Engine
	radius int
	color  gfx.Color
	shown  bool
}

// NewCrosshair returns a hidden crosshair with arms of length radius.
func NewCrosshair(s gfx.Surface, alloc Allocator, radius int) *Crosshair {
	if radius < 0 {
		radius = 0
	}
	return &Crosshair{e: New(s, alloc), radius: radius}
}

func (c *Crosshair) bounds(p image.Point) image.Rectangle {
	return image.Rect(p.X-c.radius, p.Y-c.radius, p.X+c.radius+1, p.Y+c.radius+1)
}

func (c *Crosshair) draw(p image.Point) func(gfx.Surface) {
	return func(s gfx.Surface) {
		r := c.radius
		s.DrawLine(p.X-r, p.Y, p.X+r, p.Y, c.color)
		s.DrawLine(p.X, p.Y-r, p.X, p.Y+r, c.color)
	}
}

// MoveTo puts the crosshair at p in colour col, restoring what it covered before.
func (c *Crosshair) MoveTo(p image.Point, col gfx.Color) {
	c.color = col
	c.shown = true
	c.e.ShowAt(p, c.bounds(p), c.draw(p))
}

// Repair redraws the crosshair in place after the background was repainted.
func (c *Crosshair) Repair(col gfx.Color) {
	if !c.shown {
		return
	}
	c.color = col
	p := c.e.Pos()
	c.e.Recapture(p, c.bounds(p), c.draw(p))
}

// Lift takes the crosshair off the screen until the next MoveTo or Repair.
func (c *Crosshair) Lift() { c.e.Restore() }

// Pos is the crosshair centre.
func (c *Crosshair) Pos() image.Point { return c.e.Pos() }

// Place sets the position without drawing, for initial state.
func (c *Crosshair) Place(p image.Point) {
	c.e.pos = p
	c.shown = true
}

// Engine exposes the underlying overlay.
func (c *Crosshair) Engine() *Engine { return c.e }

// PingConfig sets the ping animation.
type PingConfig struct {
	StartRadius int
	Step        int
	IntervalMs  uint32
}

// Ping is an expanding double ring. It grows by Step every IntervalMs until
// its radius passes the surface diagonal, then removes itself.
type Ping struct {
	e    *Engine
	cfg  PingConfig
	maxR int

	active bool
	color  gfx.Color
	next   deadline.Timer
	radius int
	drawn  int
	framed bool
}

// NewPing returns an idle ping.
func NewPing(s gfx.Surface, alloc Allocator, cfg PingConfig) *Ping {
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	return &Ping{
		e:    New(s, alloc),
		cfg:  cfg,
		maxR: int(math.Hypot(float64(s.Width()), float64(s.Height()))),
	}
}

// Active reports whether the animation is running.
func (p *Ping) Active() bool { return p.active }

// Radius is the radius of the next frame.
func (p *Ping) Radius() int { return p.radius }

// Start begins a ping at at. A running ping lifts its last frame, moves to
// the new centre and restarts from the start radius.
func (p *Ping) Start(now uint32, at image.Point, col gfx.Color) {
	p.e.Restore()
	p.active = true
	p.color = col
	p.radius = p.cfg.StartRadius
	p.framed = false
	p.e.pos = at
	p.next.Arm(now, p.cfg.IntervalMs)
}

func (p *Ping) bounds(r int) image.Rectangle {
	c := p.e.Pos()
	return image.Rect(c.X-(r+1), c.Y-(r+1), c.X+r+2, c.Y+r+2)
}

func (p *Ping) draw(r int) func(gfx.Surface) {
	c := p.e.Pos()
	return func(s gfx.Surface) {
		s.DrawCircle(c.X, c.Y, r, p.color)
		s.DrawCircle(c.X, c.Y, r+1, p.color)
	}
}

// Step draws the next frame when it is due. It reports true on the tick the
// animation ends, after the last frame has been lifted off the screen.
func (p *Ping) Step(now uint32) (ended bool) {
	if !p.active || !p.next.Fire(now) {
		return false
	}
	r := p.radius
	p.e.ShowAt(p.e.Pos(), p.bounds(r), p.draw(r))
	p.drawn = r
	p.framed = true
	p.radius += p.cfg.Step
	if p.radius > p.maxR {
		p.e.Disable()
		p.active = false
		p.framed = false
		return true
	}
	p.next.Arm(now, p.cfg.IntervalMs)
	return false
}

// Repair redraws the current frame after the background was repainted.
func (p *Ping) Repair() {
	if !p.active || !p.framed {
		return
	}
	r := p.drawn
	p.e.Recapture(p.e.Pos(), p.bounds(r), p.draw(r))
}

// Engine exposes the underlying overlay.
func (p *Ping) Engine() *Engine { return p.e }
