// Package tone sequences short beeps on a fire-and-forget speaker.
package tone

import "dial/deadline"

// Speaker is the part of hal.Speaker the player needs.
type Speaker interface {
	Tone(freqHz uint16, durMs uint16)
}

// Tone is one beep.
type Tone struct {
	Freq uint16 `yaml:"freq"`
	Ms   uint16 `yaml:"ms"`
}

// Chirp is two beeps: First now, Second GapMs later.
type Chirp struct {
	First  Tone   `yaml:"first"`
	Second Tone   `yaml:"second"`
	GapMs  uint16 `yaml:"gap_ms"`
}

// Player plays tones and chirps. The second half of a chirp waits in a single
// slot; starting another chirp replaces it.
type Player struct {
	spk  Speaker
	mute bool

	pending Tone
	at      deadline.Timer
}

// New returns a player on spk.
func New(spk Speaker, mute bool) *Player {
	return &Player{spk: spk, mute: mute}
}

// Muted reports whether output is suppressed.
func (p *Player) Muted() bool { return p.mute }

// SetMute suppresses all output, including a pending second tone.
func (p *Player) SetMute(on bool) {
	p.mute = on
	if on {
		p.at.Stop()
	}
}

// Play sounds t now.
func (p *Player) Play(t Tone) {
	if p.mute || t.Freq == 0 {
		return
	}
	p.spk.Tone(t.Freq, t.Ms)
}

// Chirp plays c.First now and queues c.Second.
func (p *Player) Chirp(now uint32, c Chirp) {
	if p.mute {
		return
	}
	p.Play(c.First)
	p.pending = c.Second
	p.at.Arm(now, uint32(c.GapMs))
}

// Pending reports whether a second tone is queued.
func (p *Player) Pending() bool { return p.at.Armed() }

// Service plays the queued second tone once it is due. Call it every tick.
func (p *Player) Service(now uint32) {
	if !p.at.Fire(now) {
		return
	}
	t := p.pending
	p.pending = Tone{}
	p.Play(t)
}
