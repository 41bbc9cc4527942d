//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetPeriod(period uint64) error
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

// pwmBacklight drives the panel backlight at a fixed carrier.
type pwmBacklight struct {
	pwm pwmDevice
	ch  uint8
}

func newPWMBacklight(pin machine.Pin) *pwmBacklight {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil
	}
	if err := pwm.Configure(machine.PWMConfig{Period: 1e9 / 20000}); err != nil {
		return nil
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil
	}
	b := &pwmBacklight{pwm: pwm, ch: ch}
	b.set(255)
	return b
}

func (b *pwmBacklight) set(level uint8) {
	if b == nil {
		return
	}
	b.pwm.Set(b.ch, b.pwm.Top()*uint32(level)/255)
}
