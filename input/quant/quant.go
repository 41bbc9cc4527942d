// Package quant turns raw encoder ticks into logical detent steps.
package quant

// Quantizer accumulates raw relative ticks and emits whole multiples of a divisor.
// The remainder is carried across calls, so slow rotation is never lost.
type Quantizer struct {
	div int
	acc int
}

// New returns a Quantizer for div raw ticks per logical step. div < 1 is treated as 1.
func New(div int) *Quantizer {
	if div < 1 {
		div = 1
	}
	return &Quantizer{div: div}
}

// Quantize adds raw to the accumulator and returns the signed number of whole
// steps consumed. Afterwards |Remainder()| < Divisor().
func (q *Quantizer) Quantize(raw int) int {
	q.acc += raw
	// Go division truncates toward zero, which is exactly the
	// "subtract while >= div / add while <= -div" rule.
	steps := q.acc / q.div
	q.acc -= steps * q.div
	return steps
}

// Remainder returns the unconsumed raw ticks.
func (q *Quantizer) Remainder() int { return q.acc }

// Divisor returns the raw ticks per step.
func (q *Quantizer) Divisor() int { return q.div }

// Reset drops the remainder.
func (q *Quantizer) Reset() { q.acc = 0 }
