package gfx

import (
	"image"
	"math"

	"dial/hal"
)

// FB is a Surface over a hal.Display's RGB565 framebuffer. Pixels are written
// straight into the buffer; Flush pushes the area touched since the last flush.
type FB struct {
	disp   hal.Display
	fb     hal.Framebuffer
	buf    []byte
	stride int
	w, h   int

	dirty   image.Rectangle
	watches []*Watch
	quiet   bool
}

// NewFB wraps d. The framebuffer must be RGB565.
func NewFB(d hal.Display) *FB {
	fb := d.Framebuffer()
	return &FB{
		disp:   d,
		fb:     fb,
		buf:    fb.Buffer(),
		stride: fb.StrideBytes(),
		w:      fb.Width(),
		h:      fb.Height(),
	}
}

func (f *FB) Width() int  { return f.w }
func (f *FB) Height() int { return f.h }

func (f *FB) Watch(w *Watch) { f.watches = append(f.watches, w) }

func (f *FB) Quiet(fn func()) {
	prev := f.quiet
	f.quiet = true
	defer func() { f.quiet = prev }()
	fn()
}

// Dirty returns the area written since the last Flush.
func (f *FB) Dirty() image.Rectangle { return f.dirty }

func (f *FB) SetBrightness(level uint8) { f.disp.SetBrightness(level) }
func (f *FB) Invert(on bool)            { f.disp.Invert(on) }

// Flush presents the dirty area, or does nothing when nothing changed.
func (f *FB) Flush() error {
	if f.dirty.Empty() {
		return nil
	}
	r := f.dirty
	f.dirty = image.Rectangle{}
	if rp, ok := f.fb.(hal.RegionPresenter); ok {
		return rp.PresentRegion(r)
	}
	return f.fb.Present()
}

func (f *FB) touch(r image.Rectangle) {
	f.dirty = f.dirty.Union(r)
}

func (f *FB) put(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	off := y*f.stride + x*2
	f.buf[off] = byte(c)
	f.buf[off+1] = byte(c >> 8)
	if f.quiet {
		return
	}
	for _, w := range f.watches {
		w.mark(x, y)
	}
}

func (f *FB) get(x, y int) Color {
	off := y*f.stride + x*2
	return Color(uint16(f.buf[off]) | uint16(f.buf[off+1])<<8)
}

func (f *FB) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.put(x, y, c)
	f.touch(image.Rect(x, y, x+1, y+1))
}

func (f *FB) FillRect(r image.Rectangle, c Color) {
	r = r.Intersect(image.Rect(0, 0, f.w, f.h))
	if r.Empty() {
		return
	}
	lo := byte(c)
	hi := byte(c >> 8)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y*f.stride + r.Min.X*2
		for i := 0; i < r.Dx()*2; i += 2 {
			f.buf[row+i] = lo
			f.buf[row+i+1] = hi
		}
	}
	if !f.quiet {
		for _, w := range f.watches {
			w.markRect(r)
		}
	}
	f.touch(r)
}

// DrawLine is Bresenham over both octant directions.
func (f *FB) DrawLine(x0, y0, x1, y1 int, c Color) {
	f.touch(image.Rect(min(x0, x1), min(y0, y1), max(x0, x1)+1, max(y0, y1)+1).Intersect(image.Rect(0, 0, f.w, f.h)))

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		f.put(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a one-pixel outline with the midpoint algorithm.
func (f *FB) DrawCircle(cx, cy, r int, c Color) {
	if r < 0 {
		return
	}
	f.touch(image.Rect(cx-r, cy-r, cx+r+1, cy+r+1).Intersect(image.Rect(0, 0, f.w, f.h)))

	x := r
	y := 0
	err := 0
	for x >= y {
		f.put(cx+x, cy+y, c)
		f.put(cx+y, cy+x, c)
		f.put(cx-x, cy+y, c)
		f.put(cx-y, cy+x, c)
		f.put(cx-x, cy-y, c)
		f.put(cx-y, cy-x, c)
		f.put(cx+x, cy-y, c)
		f.put(cx+y, cy-x, c)
		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

func (f *FB) FillCircle(cx, cy, r int, c Color) {
	if r < 0 {
		return
	}
	for y := -r; y <= r; y++ {
		dx := int(math.Sqrt(float64(r*r - y*y)))
		f.FillRect(image.Rect(cx-dx, cy+y, cx+dx+1, cy+y+1), c)
	}
}

func (f *FB) ReadRegion(r image.Rectangle, dst []Color) {
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst[i] = f.get(x, y)
			i++
		}
	}
}

func (f *FB) WriteRegion(r image.Rectangle, src []Color) {
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			f.put(x, y, src[i])
			i++
		}
	}
	f.touch(r)
}

// Clear fills the whole surface.
func (f *FB) Clear(c Color) {
	f.FillRect(image.Rect(0, 0, f.w, f.h), c)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
