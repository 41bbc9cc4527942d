//go:build !tinygo

package hal

import (
	"fmt"
	"image"
	"io"
	"os"
	"sync"
)

// HostConfig describes the desktop/Linux HAL.
type HostConfig struct {
	Width  int
	Height int
	// HoldMs is the button hold threshold.
	HoldMs uint32
	// Audio enables the ebiten tone generator (cgo builds only).
	Audio bool
	// Clock overrides the wall clock.
	Clock Clock
	// Log receives log lines; stdout when nil.
	Log io.Writer
}

const (
	srcWindow = iota
	srcScript
	srcEvdev
)

type hostHAL struct {
	logger *hostLogger
	disp   *MemDisplay
	in     *hostInput
	btn    *ButtonTracker
	spk    Speaker
	clock  Clock
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = 240
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}
	var w io.Writer = os.Stdout
	if cfg.Log != nil {
		w = cfg.Log
	}
	logger := &hostLogger{w: w}
	clock := cfg.Clock
	if clock == nil {
		clock = newWallClock()
	}
	var spk Speaker = nullSpeaker{}
	if cfg.Audio {
		if a := newHostAudio(); a != nil {
			spk = a
		}
	}
	return &hostHAL{
		logger: logger,
		disp:   NewMemDisplay(cfg.Width, cfg.Height),
		in:     &hostInput{},
		btn:    NewButtonTracker(cfg.HoldMs),
		spk:    spk,
		clock:  clock,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) Encoder() Encoder { return h.in }
func (h *hostHAL) Touch() Touch     { return h.in }
func (h *hostHAL) Button() Button   { return h.btn }
func (h *hostHAL) Speaker() Speaker { return h.spk }
func (h *hostHAL) Clock() Clock     { return h.clock }

// Sample latches the button level into edges for this tick.
func (h *hostHAL) Sample() {
	h.btn.Update(h.clock.NowMillis(), h.in.buttonDown())
}

// Screenshot renders the current frame of a host HAL as the panel would show it.
func Screenshot(h HAL, round bool) (*image.RGBA, error) {
	d, ok := h.Display().(*MemDisplay)
	if !ok {
		return nil, fmt.Errorf("screenshot: unsupported display %T", h.Display())
	}
	img, _ := d.RGBA(nil, nil, round)
	return img, nil
}

// hostInput merges input from every host source. Each source owns a bit in
// the touch and button masks so one source releasing does not cancel another.
type hostInput struct {
	mu      sync.Mutex
	delta   int
	touches uint32
	pos     image.Point
	buttons uint32
}

func (in *hostInput) addTicks(n int) {
	in.mu.Lock()
	in.delta += n
	in.mu.Unlock()
}

func (in *hostInput) setTouch(src int, down bool, p image.Point) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if down {
		in.touches |= 1 << src
		in.pos = p
	} else {
		in.touches &^= 1 << src
	}
}

func (in *hostInput) setButton(src int, down bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if down {
		in.buttons |= 1 << src
	} else {
		in.buttons &^= 1 << src
	}
}

func (in *hostInput) buttonDown() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.buttons != 0
}

func (in *hostInput) PollAndResetDelta() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	d := in.delta
	in.delta = 0
	return d
}

func (in *hostInput) ContactCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.touches != 0 {
		return 1
	}
	return 0
}

func (in *hostInput) Contact(i int) image.Point {
	in.mu.Lock()
	defer in.mu.Unlock()
	if i != 0 || in.touches == 0 {
		return image.Point{}
	}
	return in.pos
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
