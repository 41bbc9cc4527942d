package hal

import "dial/deadline"

// ButtonTracker derives press and hold edges from a sampled button level.
type ButtonTracker struct {
	holdMs uint32

	down    bool
	since   uint32
	held    bool
	pressed bool
	heldNow bool
}

// NewButtonTracker returns a tracker that reports WasHeld once the button
// stays down for holdMs.
func NewButtonTracker(holdMs uint32) *ButtonTracker {
	return &ButtonTracker{holdMs: holdMs}
}

// Update samples the level. Edges from the previous Update are cleared.
func (b *ButtonTracker) Update(now uint32, down bool) {
	b.pressed = false
	b.heldNow = false
	if down && !b.down {
		b.pressed = true
		b.since = now
		b.held = false
	}
	if down && !b.held && deadline.Since(now, b.since) >= b.holdMs {
		b.held = true
		b.heldNow = true
	}
	b.down = down
}

func (b *ButtonTracker) WasPressed() bool { return b.pressed }
func (b *ButtonTracker) WasHeld() bool    { return b.heldNow }

// Down reports the last sampled level.
func (b *ButtonTracker) Down() bool { return b.down }
