package hal

import (
	"errors"
	"image"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// RegionPresenter is implemented by framebuffers that can push a sub-rectangle
// to the panel instead of the whole buffer.
type RegionPresenter interface {
	PresentRegion(r image.Rectangle) error
}

// Display provides the framebuffer plus panel-level controls.
type Display interface {
	Framebuffer() Framebuffer
	// SetBrightness sets the backlight level, 0..255.
	SetBrightness(level uint8)
	// Invert toggles panel colour inversion.
	Invert(on bool)
}

// Encoder is a relative rotary input.
type Encoder interface {
	// PollAndResetDelta returns the raw ticks seen since the previous call.
	PollAndResetDelta() int
}

// Touch reports the contacts currently on the panel. It is sampled, not evented.
type Touch interface {
	ContactCount() int
	Contact(i int) image.Point
}

// Button is a discrete push button with edge-triggered reads.
//
// Both edges are valid for the tick in which they happened.
type Button interface {
	WasPressed() bool
	WasHeld() bool
}

// Speaker plays square tones. Tone returns immediately; a new tone replaces
// whatever is still sounding.
type Speaker interface {
	Tone(freqHz uint16, durMs uint16)
	SetVolume(vol uint8)
}

// Clock is a monotonic millisecond counter. It wraps at 2^32.
type Clock interface {
	NowMillis() uint32
}

// HAL provides the only contact point between the dial and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Encoder() Encoder
	Touch() Touch
	Button() Button
	Speaker() Speaker
	Clock() Clock
}

// Sampler is implemented by HALs whose edge-triggered inputs are latched once
// per tick. Runners call Sample before each step.
type Sampler interface {
	Sample()
}
