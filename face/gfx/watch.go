package gfx

import "image"

// Watch records which pixels inside a rectangle were written since the last
// Reset. Overlays use it to tell their own frame apart from later paint.
type Watch struct {
	r    image.Rectangle
	bits []uint64
	hit  bool
}

// Reset starts watching r with no pixels marked. An empty r watches nothing.
func (w *Watch) Reset(r image.Rectangle) {
	w.r = r
	w.hit = false
	n := (r.Dx()*r.Dy() + 63) / 64
	if r.Empty() {
		n = 0
	}
	if cap(w.bits) < n {
		w.bits = make([]uint64, n)
		return
	}
	w.bits = w.bits[:n]
	clear(w.bits)
}

// Hit reports whether any watched pixel was written.
func (w *Watch) Hit() bool { return w.hit }

// Written reports whether (x, y) was written. Points outside the watched
// rectangle report false.
func (w *Watch) Written(x, y int) bool {
	if !image.Pt(x, y).In(w.r) {
		return false
	}
	i := w.index(x, y)
	return w.bits[i>>6]&(1<<(i&63)) != 0
}

func (w *Watch) index(x, y int) int {
	return (y-w.r.Min.Y)*w.r.Dx() + x - w.r.Min.X
}

func (w *Watch) mark(x, y int) {
	if !image.Pt(x, y).In(w.r) {
		return
	}
	i := w.index(x, y)
	w.bits[i>>6] |= 1 << (i & 63)
	w.hit = true
}

func (w *Watch) markRect(r image.Rectangle) {
	r = r.Intersect(w.r)
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := w.index(x, y)
			w.bits[i>>6] |= 1 << (i & 63)
		}
	}
	w.hit = true
}
