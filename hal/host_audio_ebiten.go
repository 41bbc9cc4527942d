//go:build !tinygo && cgo

package hal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const hostSampleRate = 44100

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

// hostTone plays square-wave tones through Ebiten's audio package.
type hostTone struct {
	mu     sync.Mutex
	player *audio.Player

	period int // samples per cycle, 0 = silent
	phase  int
	remain int
	vol    uint8
}

func newHostAudio() Speaker {
	audioOnce.Do(func() {
		audioCtx = audio.NewContext(hostSampleRate)
	})
	t := &hostTone{vol: 255}
	p, err := audioCtx.NewPlayer(&hostToneReader{t: t})
	if err != nil {
		return nil
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.Play()
	t.player = p
	return t
}

func (t *hostTone) Tone(freqHz uint16, durMs uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if freqHz == 0 || durMs == 0 {
		t.period = 0
		t.remain = 0
		return
	}
	t.period = hostSampleRate / int(freqHz)
	if t.period < 2 {
		t.period = 2
	}
	t.phase = 0
	t.remain = hostSampleRate * int(durMs) / 1000
}

func (t *hostTone) SetVolume(vol uint8) {
	t.mu.Lock()
	t.vol = vol
	t.mu.Unlock()
}

// next returns one mono sample and advances the generator.
func (t *hostTone) next() int16 {
	if t.remain <= 0 || t.period == 0 {
		return 0
	}
	t.remain--
	amp := int32(t.vol) * 48
	t.phase++
	if t.phase >= t.period {
		t.phase = 0
	}
	if t.phase < t.period/2 {
		return int16(amp)
	}
	return int16(-amp)
}

type hostToneReader struct {
	t *hostTone
}

// Read never blocks: silence is produced when no tone is pending.
func (r *hostToneReader) Read(p []byte) (int, error) {
	t := r.t
	t.mu.Lock()
	defer t.mu.Unlock()
	// Ebiten audio expects 16-bit little-endian stereo.
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		s := t.next()
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}
	return n, nil
}
