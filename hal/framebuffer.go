package hal

import (
	"image"
	"sync"
)

// MemFramebuffer is an RGB565 little-endian framebuffer held in RAM.
// present, when set, pushes the buffer to a panel.
type MemFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte

	present       func(buf []byte) error
	presentRegion func(buf []byte, r image.Rectangle) error
}

// NewMemFramebuffer returns a zeroed width x height framebuffer whose Present is a no-op.
func NewMemFramebuffer(width, height int) *MemFramebuffer {
	stride := width * 2
	return &MemFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *MemFramebuffer) Width() int          { return f.width }
func (f *MemFramebuffer) Height() int         { return f.height }
func (f *MemFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *MemFramebuffer) StrideBytes() int    { return f.stride }
func (f *MemFramebuffer) Buffer() []byte      { return f.buf }

func (f *MemFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *MemFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.present == nil {
		return nil
	}
	return f.present(f.buf)
}

// PresentRegion pushes only r when the backend supports it, else the whole buffer.
func (f *MemFramebuffer) PresentRegion(r image.Rectangle) error {
	r = r.Intersect(image.Rect(0, 0, f.width, f.height))
	if r.Empty() {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case f.presentRegion != nil:
		return f.presentRegion(f.buf, r)
	case f.present != nil:
		return f.present(f.buf)
	}
	return nil
}

func (f *MemFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// MemDisplay is a Display over a MemFramebuffer that records brightness and
// inversion so they can be applied when the frame is shown.
type MemDisplay struct {
	fb *MemFramebuffer

	mu         sync.Mutex
	brightness uint8
	inverted   bool

	onBrightness func(uint8)
	onInvert     func(bool)
}

// NewMemDisplay returns a full-brightness, non-inverted display of the given size.
func NewMemDisplay(width, height int) *MemDisplay {
	return &MemDisplay{fb: NewMemFramebuffer(width, height), brightness: 255}
}

func (d *MemDisplay) Framebuffer() Framebuffer { return d.fb }

// Mem returns the concrete framebuffer.
func (d *MemDisplay) Mem() *MemFramebuffer { return d.fb }

func (d *MemDisplay) SetBrightness(level uint8) {
	d.mu.Lock()
	d.brightness = level
	fn := d.onBrightness
	d.mu.Unlock()
	if fn != nil {
		fn(level)
	}
}

func (d *MemDisplay) Invert(on bool) {
	d.mu.Lock()
	d.inverted = on
	fn := d.onInvert
	d.mu.Unlock()
	if fn != nil {
		fn(on)
	}
}

// Brightness returns the last level passed to SetBrightness.
func (d *MemDisplay) Brightness() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

// Inverted returns the last value passed to Invert.
func (d *MemDisplay) Inverted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inverted
}

// Pixel returns the raw RGB565 value at (x, y), or 0 when out of range.
func (d *MemDisplay) Pixel(x, y int) uint16 {
	fb := d.fb
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 0
	}
	off := y*fb.stride + x*2
	return uint16(fb.buf[off]) | uint16(fb.buf[off+1])<<8
}

// RGBA renders the frame as a viewer would see it into dst, which is
// reallocated when its size does not match. With round set, pixels outside
// the inscribed circle are black, like a round panel.
func (d *MemDisplay) RGBA(dst *image.RGBA, scratch []byte, round bool) (*image.RGBA, []byte) {
	fb := d.fb
	if dst == nil || dst.Bounds().Dx() != fb.width || dst.Bounds().Dy() != fb.height {
		dst = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	}
	if len(scratch) != len(fb.buf) {
		scratch = make([]byte, len(fb.buf))
	}
	fb.snapshotRGB565(scratch)

	level := d.Brightness()
	invert := d.Inverted()

	cx2 := fb.width - 1
	cy2 := fb.height - 1
	rr := min(fb.width, fb.height)
	pix := dst.Pix
	for y := 0; y < fb.height; y++ {
		row := y * fb.stride
		out := y * dst.Stride
		for x := 0; x < fb.width; x++ {
			j := out + x*4
			if round {
				// Compare in doubled coordinates so the centre may sit between pixels.
				dx := 2*x - cx2
				dy := 2*y - cy2
				if dx*dx+dy*dy > rr*rr {
					pix[j+0], pix[j+1], pix[j+2], pix[j+3] = 0, 0, 0, 0xFF
					continue
				}
			}
			i := row + x*2
			r, g, b := panelRGB(uint16(scratch[i])|uint16(scratch[i+1])<<8, level, invert)
			pix[j+0] = r
			pix[j+1] = g
			pix[j+2] = b
			pix[j+3] = 0xFF
		}
	}
	return dst, scratch
}
