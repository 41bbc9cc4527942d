package hal

import "image"

type nullEncoder struct{}

func (nullEncoder) PollAndResetDelta() int { return 0 }

type nullTouch struct{}

func (nullTouch) ContactCount() int         { return 0 }
func (nullTouch) Contact(i int) image.Point { return image.Point{} }

type nullButton struct{}

func (nullButton) WasPressed() bool { return false }
func (nullButton) WasHeld() bool    { return false }

type nullSpeaker struct{}

func (nullSpeaker) Tone(freqHz uint16, durMs uint16) {}
func (nullSpeaker) SetVolume(vol uint8)              {}
