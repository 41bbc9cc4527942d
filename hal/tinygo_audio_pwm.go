//go:build tinygo && baremetal

package hal

import (
	"machine"

	"dial/deadline"
)

// pwmTone plays square tones on a piezo buzzer: the PWM period follows the
// tone frequency and the duty cycle follows the volume. Sample turns the
// output off once the tone has run its course.
type pwmTone struct {
	pin   machine.Pin
	pwm   pwmDevice
	ch    uint8
	clock Clock

	volume  uint8
	playing bool
	stop    deadline.Timer
}

func newPWMTone(pin machine.Pin, clock Clock) *pwmTone {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil
	}
	if err := pwm.Configure(machine.PWMConfig{Period: 1e9 / 1000}); err != nil {
		return nil
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil
	}
	pwm.Set(ch, 0)
	return &pwmTone{pin: pin, pwm: pwm, ch: ch, clock: clock, volume: 255}
}

func (t *pwmTone) Tone(freqHz uint16, durMs uint16) {
	if freqHz == 0 || durMs == 0 {
		t.silence()
		return
	}
	if err := t.pwm.SetPeriod(1e9 / uint64(freqHz)); err != nil {
		t.silence()
		return
	}
	// Half duty is the loudest square wave; volume scales it down.
	t.pwm.Set(t.ch, t.pwm.Top()/2*uint32(t.volume)/255)
	t.pwm.Enable(true)
	t.playing = true
	t.stop.Arm(t.clock.NowMillis(), uint32(durMs))
}

func (t *pwmTone) SetVolume(vol uint8) { t.volume = vol }

func (t *pwmTone) service(now uint32) {
	if t.playing && t.stop.Fire(now) {
		t.silence()
	}
}

func (t *pwmTone) silence() {
	t.pwm.Set(t.ch, 0)
	t.playing = false
	t.stop.Stop()
}
