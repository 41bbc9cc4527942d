// Package deadline holds millisecond deadlines against a wrapping uint32 clock.
//
// All comparisons go through unsigned subtraction so a deadline armed just before
// the counter wraps still fires just after it.
package deadline

// Due reports whether now is at or past at, treating the clock as wrapping.
// Deadlines further than 2^31 ms away are not representable.
func Due(now, at uint32) bool {
	return int32(now-at) >= 0
}

// Since returns the elapsed milliseconds from start to now across a wrap.
func Since(now, start uint32) uint32 {
	return now - start
}

// Timer is a one-shot deadline. The zero value is disarmed.
type Timer struct {
	at    uint32
	armed bool
}

// Arm schedules the timer for now+after.
func (t *Timer) Arm(now, after uint32) {
	t.at = now + after
	t.armed = true
}

// Stop disarms the timer.
func (t *Timer) Stop() { t.armed = false }

// Armed reports whether the timer is pending.
func (t *Timer) Armed() bool { return t.armed }

// Due reports whether the timer is armed and its deadline has passed.
func (t *Timer) Due(now uint32) bool {
	return t.armed && Due(now, t.at)
}

// Fire is Due followed by Stop when it returns true.
func (t *Timer) Fire(now uint32) bool {
	if !t.Due(now) {
		return false
	}
	t.armed = false
	return true
}

// Every fires periodically. The zero value fires on the first Tick.
type Every struct {
	last    uint32
	started bool
}

// Tick reports whether at least period ms elapsed since the last firing.
func (e *Every) Tick(now, period uint32) bool {
	if e.started && Since(now, e.last) < period {
		return false
	}
	e.last = now
	e.started = true
	return true
}
