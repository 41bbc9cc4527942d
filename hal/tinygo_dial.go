//go:build tinygo && baremetal

package hal

import (
	"errors"
	"image"
	"machine"
	"time"

	"tinygo.org/x/drivers/encoders"
)

const (
	dialWidth  = 240
	dialHeight = 240

	cst816Addr = 0x15
)

type dialHAL struct {
	logger *uartLogger
	disp   *MemDisplay
	enc    *dialEncoder
	touch  Touch
	btn    *ButtonTracker
	btnPin machine.Pin
	spk    Speaker
	tone   *pwmTone
	clock  Clock
}

// New returns the HAL for an RP2040 round-display dial: GC9A01 240x240 panel
// on SPI1, CST816S touch on I2C1, quadrature encoder on GP2/GP3 with its push
// button on GP4, piezo on GP5 and backlight PWM on GP25.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New(holdMs uint32) HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}
	clock := newWallClock()

	disp := NewMemDisplay(dialWidth, dialHeight)
	if lcd, err := initGC9A01(); err == nil {
		fb := disp.Mem()
		fb.present = func(buf []byte) error {
			return lcd.blit(buf, fb.stride, image.Rect(0, 0, fb.width, fb.height))
		}
		fb.presentRegion = func(buf []byte, r image.Rectangle) error {
			return lcd.blit(buf, fb.stride, r)
		}
		disp.onInvert = lcd.invert
	} else {
		logger.WriteLineString("dial: lcd: " + err.Error())
	}
	if bl := newPWMBacklight(machine.GP25); bl != nil {
		disp.onBrightness = bl.set
	}

	var touch Touch = nullTouch{}
	if t, err := initCST816S(); err == nil {
		touch = t
	} else {
		logger.WriteLineString("dial: touch: " + err.Error())
	}

	btnPin := machine.GP4
	btnPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	h := &dialHAL{
		logger: logger,
		disp:   disp,
		enc:    newDialEncoder(machine.GP2, machine.GP3),
		touch:  touch,
		btn:    NewButtonTracker(holdMs),
		btnPin: btnPin,
		spk:    nullSpeaker{},
		clock:  clock,
	}
	if t := newPWMTone(machine.GP5, clock); t != nil {
		h.tone = t
		h.spk = t
	}
	return h
}

func (h *dialHAL) Logger() Logger   { return h.logger }
func (h *dialHAL) Display() Display { return h.disp }
func (h *dialHAL) Encoder() Encoder { return h.enc }
func (h *dialHAL) Touch() Touch     { return h.touch }
func (h *dialHAL) Button() Button   { return h.btn }
func (h *dialHAL) Speaker() Speaker { return h.spk }
func (h *dialHAL) Clock() Clock     { return h.clock }

func (h *dialHAL) Sample() {
	now := h.clock.NowMillis()
	// Active low.
	h.btn.Update(now, !h.btnPin.Get())
	if t, ok := h.touch.(*cst816s); ok {
		t.sample()
	}
	if h.tone != nil {
		h.tone.service(now)
	}
}

type dialEncoder struct {
	dev  *encoders.QuadratureDevice
	last int
}

func newDialEncoder(a, b machine.Pin) *dialEncoder {
	dev := encoders.NewQuadratureViaInterrupt(a, b)
	dev.Configure(encoders.QuadratureConfig{Precision: 1})
	return &dialEncoder{dev: dev}
}

func (e *dialEncoder) PollAndResetDelta() int {
	pos := e.dev.Position()
	d := pos - e.last
	e.last = pos
	return d
}

type cst816s struct {
	i2c *machine.I2C

	reg  [1]byte
	data [6]byte

	count int
	pos   image.Point
}

func initCST816S() (*cst816s, error) {
	i2c := machine.I2C1
	if err := i2c.Configure(machine.I2CConfig{
		SDA:       machine.GP6,
		SCL:       machine.GP7,
		Frequency: 400 * machine.KHz,
	}); err != nil {
		return nil, err
	}
	t := &cst816s{i2c: i2c}
	// Chip ID lives at 0xA7; any answer means the controller is there.
	id := []byte{0}
	if err := i2c.Tx(cst816Addr, []byte{0xA7}, id); err != nil {
		return nil, err
	}
	// Disable auto-sleep so polling keeps working.
	if err := i2c.Tx(cst816Addr, []byte{0xFE, 0x01}, nil); err != nil {
		return nil, err
	}
	return t, nil
}

// sample reads finger count and position from 0x02..0x06.
func (t *cst816s) sample() {
	t.reg[0] = 0x01
	if err := t.i2c.Tx(cst816Addr, t.reg[:], t.data[:]); err != nil {
		t.count = 0
		return
	}
	t.count = int(t.data[1])
	if t.count > 1 {
		t.count = 1
	}
	x := int(t.data[2]&0x0F)<<8 | int(t.data[3])
	y := int(t.data[4]&0x0F)<<8 | int(t.data[5])
	t.pos = image.Pt(x, y)
}

func (t *cst816s) ContactCount() int { return t.count }

func (t *cst816s) Contact(i int) image.Point {
	if i != 0 || t.count == 0 {
		return image.Point{}
	}
	return t.pos
}

type gc9a01 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	txBuf []byte
}

func initGC9A01() (*gc9a01, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		Frequency: 40_000_000,
	})

	lcd := &gc9a01{
		spi:   *machine.SPI1,
		cs:    machine.GP9,
		dc:    machine.GP8,
		rst:   machine.GP12,
		txBuf: make([]byte, 2*dialWidth*8),
	}

	lcd.cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.dc.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.rst.Configure(machine.PinConfig{Mode: machine.PinOutput})
	lcd.cs.High()
	lcd.dc.High()
	lcd.rst.High()

	lcd.reset()
	lcd.init()

	return lcd, nil
}

func (d *gc9a01) reset() {
	d.rst.Low()
	time.Sleep(20 * time.Millisecond)
	d.rst.High()
	time.Sleep(120 * time.Millisecond)
}

func (d *gc9a01) init() {
	// Unlock the vendor register bank.
	d.cmd(0xEF)
	d.cmd(0xEB, 0x14)
	d.cmd(0xFE)
	d.cmd(0xEF)
	d.cmd(0xEB, 0x14)

	d.cmd(0x84, 0x40)
	d.cmd(0x85, 0xFF)
	d.cmd(0x86, 0xFF)
	d.cmd(0x87, 0xFF)
	d.cmd(0x88, 0x0A)
	d.cmd(0x89, 0x21)
	d.cmd(0x8A, 0x00)
	d.cmd(0x8B, 0x80)
	d.cmd(0x8C, 0x01)
	d.cmd(0x8D, 0x01)
	d.cmd(0x8E, 0xFF)
	d.cmd(0x8F, 0xFF)

	d.cmd(0xB6, 0x00, 0x20) // DISCTRL
	d.cmd(0x36, 0x08)       // MADCTL: BGR
	d.cmd(0x3A, 0x05)       // COLMOD: 16bpp

	d.cmd(0x90, 0x08, 0x08, 0x08, 0x08)
	d.cmd(0xBD, 0x06)
	d.cmd(0xBC, 0x00)
	d.cmd(0xFF, 0x60, 0x01, 0x04)
	d.cmd(0xC3, 0x13) // VREG1A
	d.cmd(0xC4, 0x13) // VREG1B
	d.cmd(0xC9, 0x22) // VREG2A
	d.cmd(0xBE, 0x11)
	d.cmd(0xE1, 0x10, 0x0E)
	d.cmd(0xDF, 0x21, 0x0C, 0x02)

	// Gamma.
	d.cmd(0xF0, 0x45, 0x09, 0x08, 0x08, 0x26, 0x2A)
	d.cmd(0xF1, 0x43, 0x70, 0x72, 0x36, 0x37, 0x6F)
	d.cmd(0xF2, 0x45, 0x09, 0x08, 0x08, 0x26, 0x2A)
	d.cmd(0xF3, 0x43, 0x70, 0x72, 0x36, 0x37, 0x6F)

	d.cmd(0xED, 0x1B, 0x0B)
	d.cmd(0xAE, 0x77)
	d.cmd(0xCD, 0x63)
	d.cmd(0x70, 0x07, 0x07, 0x04, 0x0E, 0x0F, 0x09, 0x07, 0x08, 0x03)
	d.cmd(0xE8, 0x34) // frame rate
	d.cmd(0x62, 0x18, 0x0D, 0x71, 0xED, 0x70, 0x70, 0x18, 0x0F, 0x71, 0xEF, 0x70, 0x70)
	d.cmd(0x63, 0x18, 0x11, 0x71, 0xF1, 0x70, 0x70, 0x18, 0x13, 0x71, 0xF3, 0x70, 0x70)
	d.cmd(0x64, 0x28, 0x29, 0xF1, 0x01, 0xF1, 0x00, 0x07)
	d.cmd(0x66, 0x3C, 0x00, 0xCD, 0x67, 0x45, 0x45, 0x10, 0x00, 0x00, 0x00)
	d.cmd(0x67, 0x00, 0x3C, 0x00, 0x00, 0x00, 0x01, 0x54, 0x10, 0x32, 0x98)
	d.cmd(0x74, 0x10, 0x85, 0x80, 0x00, 0x00, 0x4E, 0x00)
	d.cmd(0x98, 0x3E, 0x07)
	d.cmd(0x35) // TEON

	// The GC9A01 panel shows correct colours with inversion on.
	d.cmd(0x21) // INVON

	d.cmd(0x11) // SLPOUT
	time.Sleep(120 * time.Millisecond)
	d.cmd(0x29) // DISPON
	time.Sleep(20 * time.Millisecond)
}

// invert flips colours relative to the panel's native inverted mode.
func (d *gc9a01) invert(on bool) {
	if on {
		d.cmd(0x20) // INVOFF
		return
	}
	d.cmd(0x21) // INVON
}

func (d *gc9a01) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *gc9a01) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(
		0x2A,
		byte(x0>>8), byte(x0),
		byte(x1>>8), byte(x1),
	)
	d.cmd(
		0x2B,
		byte(y0>>8), byte(y0),
		byte(y1>>8), byte(y1),
	)
	d.cmd(0x2C)
}

// blit streams rectangle r of a little-endian RGB565 buffer to the panel.
func (d *gc9a01) blit(buf []byte, stride int, r image.Rectangle) error {
	if r.Empty() {
		return nil
	}
	rowBytes := r.Dx() * 2
	if len(d.txBuf) < rowBytes {
		return errors.New("tx buffer too small")
	}

	d.setWindow(uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Max.X-1), uint16(r.Max.Y-1))

	d.cs.Low()
	d.dc.High()

	rows := len(d.txBuf) / rowBytes
	for y := r.Min.Y; y < r.Max.Y; {
		n := 0
		for ; n < rows && y < r.Max.Y; n, y = n+1, y+1 {
			src := buf[y*stride+r.Min.X*2 : y*stride+r.Max.X*2]
			dst := d.txBuf[n*rowBytes:]
			for i := 0; i < rowBytes; i += 2 {
				// The framebuffer is little-endian; the panel expects big-endian.
				dst[i] = src[i+1]
				dst[i+1] = src[i]
			}
		}
		d.spi.Tx(d.txBuf[:n*rowBytes], nil)
	}

	d.cs.High()
	return nil
}
