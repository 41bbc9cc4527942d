package app

import (
	"errors"
	"image"
	"strings"
	"testing"

	"dial/config"
	"dial/face/theme"
	"dial/hal"
)

type fakeEncoder struct{ delta int }

func (e *fakeEncoder) PollAndResetDelta() int {
	d := e.delta
	e.delta = 0
	return d
}

type fakeTouch struct {
	down  bool
	p     image.Point
	panic bool
}

func (t *fakeTouch) ContactCount() int {
	if t.panic {
		panic("touch controller gone")
	}
	if t.down {
		return 1
	}
	return 0
}

func (t *fakeTouch) Contact(int) image.Point { return t.p }

type fakeButton struct{ pressed, held bool }

func (b *fakeButton) WasPressed() bool { return b.pressed }
func (b *fakeButton) WasHeld() bool    { return b.held }

type toneCall struct{ freq, ms uint16 }

type fakeSpeaker struct {
	tones  []toneCall
	volume uint8
}

func (s *fakeSpeaker) Tone(freq, ms uint16) { s.tones = append(s.tones, toneCall{freq, ms}) }
func (s *fakeSpeaker) SetVolume(v uint8)    { s.volume = v }

func (s *fakeSpeaker) last() toneCall {
	if len(s.tones) == 0 {
		return toneCall{}
	}
	return s.tones[len(s.tones)-1]
}

type fakeLogger struct{ lines []string }

func (l *fakeLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *fakeLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *fakeLogger) contains(sub string) bool {
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// failingFramebuffer hides PresentRegion so every flush goes through Present.
type failingFramebuffer struct {
	hal.Framebuffer
	err error
}

func (f failingFramebuffer) Present() error { return f.err }

type failingDisplay struct {
	*hal.MemDisplay
	err error
}

func (d failingDisplay) Framebuffer() hal.Framebuffer {
	return failingFramebuffer{Framebuffer: d.MemDisplay.Framebuffer(), err: d.err}
}

type fakeHAL struct {
	disp       *hal.MemDisplay
	presentErr error
	enc        fakeEncoder
	touch      fakeTouch
	btn        fakeButton
	spk        fakeSpeaker
	clock      *hal.ManualClock
	log        fakeLogger
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{disp: hal.NewMemDisplay(240, 240), clock: hal.NewManualClock(0)}
}

func (h *fakeHAL) Logger() hal.Logger { return &h.log }
func (h *fakeHAL) Display() hal.Display {
	if h.presentErr != nil {
		return failingDisplay{MemDisplay: h.disp, err: h.presentErr}
	}
	return h.disp
}
func (h *fakeHAL) Encoder() hal.Encoder { return &h.enc }
func (h *fakeHAL) Touch() hal.Touch     { return &h.touch }
func (h *fakeHAL) Button() hal.Button   { return &h.btn }
func (h *fakeHAL) Speaker() hal.Speaker { return &h.spk }
func (h *fakeHAL) Clock() hal.Clock     { return h.clock }

const tickMs = 16

func (h *fakeHAL) step(t *testing.T, step func() error) {
	t.Helper()
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	h.clock.Advance(tickMs)
}

// Somewhere inside the ring that nothing but the background covers.
var bgProbe = image.Pt(120, 200)

func TestStartup(t *testing.T) {
	h := newFakeHAL()
	h.enc.delta = 7
	d := newDial(h, config.Default())

	if h.spk.volume != 180 {
		t.Fatalf("volume=%d", h.spk.volume)
	}
	if len(h.spk.tones) != 1 || h.spk.tones[0] != (toneCall{2000, 200}) {
		t.Fatalf("tones=%v want boot tone", h.spk.tones)
	}
	if got := h.disp.Brightness(); got != 204 {
		t.Fatalf("brightness=%d", got)
	}
	if got := d.cursor.Pos(); got != image.Pt(120, 120) {
		t.Fatalf("cursor=%v", got)
	}
	if h.enc.delta != 0 {
		t.Fatal("boot ticks not discarded")
	}

	step := d.guard(d.step)
	h.step(t, step)
	if got := h.disp.Pixel(bgProbe.X, bgProbe.Y); got != uint16(theme.At(0).BG) {
		t.Fatalf("bg pixel=%#04x", got)
	}
	if d.bright.Percent() != 80 {
		t.Fatalf("pct=%d", d.bright.Percent())
	}
}

func TestEncoderAdjustsBrightness(t *testing.T) {
	h := newFakeHAL()
	d := newDial(h, config.Default())
	step := d.guard(d.step)

	h.enc.delta = 3
	h.step(t, step)
	if d.bright.Percent() != 80 || len(h.spk.tones) != 1 {
		t.Fatalf("sub-detent ticks acted: pct=%d tones=%v", d.bright.Percent(), h.spk.tones)
	}

	h.enc.delta = 1
	h.step(t, step)
	if d.bright.Percent() != 90 || h.disp.Brightness() != 229 {
		t.Fatalf("pct=%d byte=%d", d.bright.Percent(), h.disp.Brightness())
	}
	if h.spk.last() != (toneCall{1800, 40}) {
		t.Fatalf("tone=%v want click up", h.spk.last())
	}

	h.enc.delta = -8
	h.step(t, step)
	if d.bright.Percent() != 70 || h.spk.last() != (toneCall{1000, 40}) {
		t.Fatalf("pct=%d tone=%v", d.bright.Percent(), h.spk.last())
	}

	// Pinned at the top: no click.
	h.enc.delta = 40
	h.step(t, step)
	n := len(h.spk.tones)
	h.enc.delta = 4
	h.step(t, step)
	if d.bright.Percent() != 100 || len(h.spk.tones) != n {
		t.Fatalf("pct=%d tones=%d want %d", d.bright.Percent(), len(h.spk.tones), n)
	}
}

func TestTapStartsPing(t *testing.T) {
	h := newFakeHAL()
	d := newDial(h, config.Default())
	step := d.guard(d.step)

	h.touch.down, h.touch.p = true, image.Pt(60, 120)
	h.step(t, step)
	if got := d.cursor.Pos(); got != image.Pt(60, 120) {
		t.Fatalf("cursor=%v", got)
	}
	h.step(t, step)
	h.touch.down = false
	h.step(t, step)

	if !d.ping.Active() {
		t.Fatal("ping not started")
	}
	if h.spk.last() != (toneCall{1200, 50}) {
		t.Fatalf("tone=%v want pop first", h.spk.last())
	}
	for i := 0; i < 5; i++ {
		h.step(t, step)
	}
	if h.spk.last() != (toneCall{1800, 60}) {
		t.Fatalf("tone=%v want pop second", h.spk.last())
	}
	for i := 0; i < 200 && d.ping.Active(); i++ {
		h.step(t, step)
	}
	if d.ping.Active() {
		t.Fatal("ping never ended")
	}
}

func TestTouchIsClamped(t *testing.T) {
	h := newFakeHAL()
	d := newDial(h, config.Default())
	step := d.guard(d.step)

	h.touch.down, h.touch.p = true, image.Pt(300, -5)
	h.step(t, step)
	if got := d.cursor.Pos(); got != image.Pt(239, 0) {
		t.Fatalf("cursor=%v", got)
	}
}

func TestLongPressInverts(t *testing.T) {
	h := newFakeHAL()
	d := newDial(h, config.Default())
	step := d.guard(d.step)

	h.touch.down, h.touch.p = true, image.Pt(120, 120)
	for i := 0; i < 70; i++ {
		h.step(t, step)
	}
	h.touch.down = false
	h.step(t, step)

	if !h.disp.Inverted() || !d.inverted {
		t.Fatal("display not inverted")
	}
	if h.spk.last() != (toneCall{900, 80}) {
		t.Fatalf("tone=%v want invert chirp", h.spk.last())
	}
	if d.ping.Active() {
		t.Fatal("long press also pinged")
	}
}

func TestDragRefreshesOnly(t *testing.T) {
	h := newFakeHAL()
	d := newDial(h, config.Default())
	step := d.guard(d.step)

	h.touch.down, h.touch.p = true, image.Pt(100, 100)
	h.step(t, step)
	h.touch.p = image.Pt(160, 100)
	h.step(t, step)
	tones := len(h.spk.tones)
	h.touch.down = false
	h.step(t, step)

	if d.ping.Active() || d.inverted || len(h.spk.tones) != tones {
		t.Fatalf("drag acted: ping=%v inv=%v tones=%v", d.ping.Active(), d.inverted, h.spk.tones)
	}
}

func TestButtonCyclesTheme(t *testing.T) {
	h := newFakeHAL()
	d := newDial(h, config.Default())
	step := d.guard(d.step)

	h.btn.pressed = true
	h.step(t, step)
	h.btn.pressed = false

	if d.themeIdx != 1 {
		t.Fatalf("theme=%d", d.themeIdx)
	}
	if got := h.disp.Pixel(bgProbe.X, bgProbe.Y); got != uint16(theme.At(1).BG) {
		t.Fatalf("bg pixel=%#04x want theme 1", got)
	}
	if h.spk.last() != (toneCall{1200, 70}) {
		t.Fatalf("tone=%v want confirm", h.spk.last())
	}

	for i := 0; i < theme.Count()-1; i++ {
		h.btn.pressed = true
		h.step(t, step)
	}
	if d.themeIdx != 0 {
		t.Fatalf("theme=%d after full cycle", d.themeIdx)
	}
}

func TestHoldRunsStarburst(t *testing.T) {
	h := newFakeHAL()
	d := newDial(h, config.Default())
	step := d.guard(d.step)

	h.btn.held = true
	h.step(t, step)
	h.btn.held = false
	if !d.burst.Active() {
		t.Fatal("starburst not started")
	}
	if h.spk.last() != (toneCall{1500, 60}) {
		t.Fatalf("tone=%v", h.spk.last())
	}

	// Inputs wait while the effect owns the face.
	h.touch.down, h.touch.p = true, image.Pt(50, 50)
	h.enc.delta = 4
	h.step(t, step)
	if d.touch.Active() || d.bright.Percent() != 80 {
		t.Fatalf("input handled during starburst: touch=%v pct=%d", d.touch.Active(), d.bright.Percent())
	}
	h.touch.down = false

	for i := 0; i < 200 && d.burst.Active(); i++ {
		h.step(t, step)
	}
	if d.burst.Active() {
		t.Fatal("starburst never ended")
	}
	h.step(t, step)
	if d.bright.Percent() != 90 {
		t.Fatalf("pct=%d, held ticks lost", d.bright.Percent())
	}
}

func TestHeartbeatLogging(t *testing.T) {
	cfg := config.Default()
	cfg.Debug.Heartbeat = true
	cfg.Logging.Level = "debug"
	h := newFakeHAL()
	step := New(h, cfg)
	h.step(t, step)

	if !h.log.contains("heartbeat") || !h.log.contains("component=dbg") {
		t.Fatalf("lines=%q", h.log.lines)
	}
}

func TestMuteSilencesEverything(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Mute = true
	h := newFakeHAL()
	step := New(h, cfg)
	h.btn.pressed = true
	h.step(t, step)
	if len(h.spk.tones) != 0 {
		t.Fatalf("tones=%v", h.spk.tones)
	}
}

func TestFaultScreen(t *testing.T) {
	h := newFakeHAL()
	step := New(h, config.Default())
	h.step(t, step)

	h.touch.panic = true
	err := step()
	if err == nil || !strings.Contains(err.Error(), "touch controller gone") {
		t.Fatalf("err=%v", err)
	}
	if got := h.disp.Pixel(2, 120); got != 0xFFFF {
		t.Fatalf("fault screen pixel=%#04x", got)
	}
	if h.disp.Brightness() != 255 {
		t.Fatalf("brightness=%d", h.disp.Brightness())
	}
	if !h.log.contains("dial fault") {
		t.Fatalf("lines=%q", h.log.lines)
	}

	h.touch.panic = false
	if err := step(); err != errFaulted {
		t.Fatalf("err=%v want halted", err)
	}
}

func TestFaultScreenPresentErrorIsLogged(t *testing.T) {
	h := newFakeHAL()
	h.presentErr = errors.New("spi timeout")
	step := New(h, config.Default())

	h.touch.panic = true
	err := step()
	if err == nil || !strings.Contains(err.Error(), "dial fault") {
		t.Fatalf("err=%v", err)
	}
	if !h.log.contains("fault screen present failed") || !h.log.contains("spi timeout") {
		t.Fatalf("lines=%q", h.log.lines)
	}
}

func TestPresentErrorFailsStep(t *testing.T) {
	h := newFakeHAL()
	h.presentErr = errors.New("spi timeout")
	step := New(h, config.Default())
	if err := step(); err == nil || !strings.Contains(err.Error(), "spi timeout") {
		t.Fatalf("err=%v", err)
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		s, prefix, rest string
		n               int
	}{
		{"hello", "hel", "lo", 3},
		{"hi", "hi", "", 5},
		{"héllo", "hé", "llo", 2},
		{"x", "", "x", 0},
	}
	for _, tt := range tests {
		p, r := takeRunes(tt.s, tt.n)
		if p != tt.prefix || r != tt.rest {
			t.Fatalf("takeRunes(%q, %d)=%q,%q", tt.s, tt.n, p, r)
		}
	}
}
