// Package gesture classifies sampled touch contacts into tap, drag and long-press.
//
// The classifier is level-triggered: it only needs to know, each tick, whether a
// contact is reported and where. Press and release are reconstructed by diffing
// against the previous sample, so missed edge notifications from a touch driver
// do not matter. Classification happens once, when the contact disappears.
package gesture

import (
	"image"

	"dial/deadline"
)

// Kind identifies what Update observed.
type Kind uint8

const (
	None Kind = iota
	// Press is the first tick a contact is reported.
	Press
	// Hold is every following tick while the contact persists.
	Hold
	// Tap is a short release without movement beyond the threshold.
	Tap
	// Drag is a release after the contact moved beyond the threshold.
	Drag
	// LongPress is a release without movement held longer than the threshold.
	LongPress
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Press:
		return "press"
	case Hold:
		return "hold"
	case Tap:
		return "tap"
	case Drag:
		return "drag"
	case LongPress:
		return "long-press"
	default:
		return "unknown"
	}
}

// Released reports whether k is one of the release classifications.
func (k Kind) Released() bool {
	return k == Tap || k == Drag || k == LongPress
}

// Config holds the classification thresholds.
type Config struct {
	TapMaxMovePx int
	LongPressMs  uint32
}

// Event is the outcome of one Update.
type Event struct {
	Kind Kind
	// Pos is the current contact position for Press/Hold, and the last
	// reported position for release kinds.
	Pos image.Point
	// Start is where the contact began.
	Start image.Point
	// Duration is the time since the press, in milliseconds.
	Duration uint32
	// DragStarted is set on the single Hold tick where movement first
	// exceeded the threshold.
	DragStarted bool
	// Dist2 is the squared distance from Start to Pos.
	Dist2 int
}

// Classifier tracks one contact lifecycle: idle, pressed, released.
type Classifier struct {
	maxMove2  int
	longPress uint32

	active  bool
	start   image.Point
	startAt uint32
	last    image.Point
	moved   bool
}

// New returns an idle Classifier.
func New(cfg Config) *Classifier {
	m := cfg.TapMaxMovePx
	if m < 0 {
		m = 0
	}
	return &Classifier{maxMove2: m * m, longPress: cfg.LongPressMs}
}

// Active reports whether a contact is in progress.
func (c *Classifier) Active() bool { return c.active }

// Moved reports whether the current contact has moved beyond the tap threshold.
func (c *Classifier) Moved() bool { return c.moved }

// Update feeds one sample. touching says whether a contact is reported this tick
// and p is its position (ignored when not touching).
func (c *Classifier) Update(now uint32, touching bool, p image.Point) Event {
	if touching {
		if !c.active {
			c.active = true
			c.start = p
			c.startAt = now
			c.moved = false
			c.last = p
			return Event{Kind: Press, Pos: p, Start: p}
		}
		c.last = p
		d2 := dist2(c.start, p)
		ev := Event{Kind: Hold, Pos: p, Start: c.start, Duration: deadline.Since(now, c.startAt), Dist2: d2}
		if !c.moved && d2 > c.maxMove2 {
			c.moved = true
			ev.DragStarted = true
		}
		return ev
	}

	if !c.active {
		return Event{Kind: None}
	}
	c.active = false

	ev := Event{
		Pos:      c.last,
		Start:    c.start,
		Duration: deadline.Since(now, c.startAt),
		Dist2:    dist2(c.start, c.last),
	}
	switch {
	case !c.moved && ev.Duration > c.longPress:
		ev.Kind = LongPress
	case !c.moved && ev.Dist2 <= c.maxMove2:
		ev.Kind = Tap
	default:
		ev.Kind = Drag
	}
	c.moved = false
	return ev
}

func dist2(a, b image.Point) int {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
