// Package level keeps the brightness percentage driven by encoder steps.
package level

// Level is a clamped percentage moved in fixed increments.
type Level struct {
	pct  int
	step int
	max  int
}

// New returns a Level starting at initial, moving step per logical step, capped at max.
func New(initial, step, max int) *Level {
	if max < 1 {
		max = 1
	}
	l := &Level{step: step, max: max}
	l.pct = l.clamp(initial)
	return l
}

// Apply moves the level by steps increments and reports whether the value changed.
func (l *Level) Apply(steps int) (prev int, changed bool) {
	prev = l.pct
	l.pct = l.clamp(l.pct + steps*l.step)
	return prev, l.pct != prev
}

// Percent returns the current value in 0..Max.
func (l *Level) Percent() int { return l.pct }

// Max returns the upper bound.
func (l *Level) Max() int { return l.max }

// Byte maps the level onto 0..255 for a backlight.
func (l *Level) Byte() uint8 {
	return uint8(l.pct * 255 / l.max)
}

func (l *Level) clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > l.max {
		return l.max
	}
	return v
}
