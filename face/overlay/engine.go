// Package overlay draws transient graphics over static content and puts the
// background back afterwards, so moving a cursor never needs a full repaint.
//
// Each Engine owns one snapshot of the pixels under its last frame. Before a
// new frame it writes the snapshot back, except where something else painted
// since, captures the new region and calls the caller's draw function.
package overlay

import (
	"image"

	"dial/face/gfx"
)

// Engine is one overlay instance.
type Engine struct {
	s   gfx.Surface
	buf *Buffer

	region   image.Rectangle
	captured bool
	// paint records writes into region after our last frame, other than
	// overlay frames and restores. Those pixels belong to whoever drew them
	// and are never restored over.
	paint gfx.Watch
	pos   image.Point
}

// New returns an idle engine drawing on s. alloc may be nil.
func New(s gfx.Surface, alloc Allocator) *Engine {
	e := &Engine{s: s, buf: NewBuffer(alloc)}
	s.Watch(&e.paint)
	return e
}

// Pos is the position passed to the last ShowAt.
func (e *Engine) Pos() image.Point { return e.pos }

// Captured reports whether a snapshot is waiting to be restored.
func (e *Engine) Captured() bool { return e.captured }

// Region is the clipped area of the current snapshot.
func (e *Engine) Region() image.Rectangle { return e.region }

// Buffer exposes the snapshot storage.
func (e *Engine) Buffer() *Buffer { return e.buf }

// ShowAt lifts the previous frame, captures the background under r and draws
// a new frame there, recording pos as the overlay's position.
func (e *Engine) ShowAt(pos image.Point, r image.Rectangle, draw func(gfx.Surface)) {
	e.show(pos, r, draw)
}

// Recapture is ShowAt after the background was redrawn underneath. Pixels
// repainted since the last frame are kept and become the new background; the
// rest are still the overlay's and are restored first, so repeated calls
// never snapshot overlay pixels.
func (e *Engine) Recapture(pos image.Point, r image.Rectangle, draw func(gfx.Surface)) {
	e.show(pos, r, draw)
}

func (e *Engine) show(pos image.Point, r image.Rectangle, draw func(gfx.Surface)) {
	e.Restore()
	e.pos = pos

	clip := r.Intersect(gfx.Bounds(e.s))
	if clip.Empty() {
		e.region = image.Rectangle{}
		e.paint.Reset(image.Rectangle{})
		return
	}
	e.region = clip

	if e.buf.Reserve(clip.Dx() * clip.Dy()) {
		e.s.ReadRegion(clip, e.buf.Pixels())
		e.captured = true
	}
	// Without a snapshot the frame is still drawn; it just cannot be undone.
	if draw != nil {
		e.s.Quiet(func() { draw(e.s) })
	}
	if e.captured {
		e.paint.Reset(clip)
	} else {
		e.paint.Reset(image.Rectangle{})
	}
}

// Restore lifts the overlay off the screen, keeping the buffer for the next
// frame. Pixels painted over the frame since it was drawn stay as they are.
func (e *Engine) Restore() {
	if !e.captured {
		return
	}
	e.captured = false
	e.s.Quiet(e.writeBack)
}

func (e *Engine) writeBack() {
	if !e.paint.Hit() {
		e.s.WriteRegion(e.region, e.buf.Pixels())
		return
	}
	pix := e.buf.Pixels()
	i := 0
	for y := e.region.Min.Y; y < e.region.Max.Y; y++ {
		for x := e.region.Min.X; x < e.region.Max.X; x++ {
			if !e.paint.Written(x, y) {
				e.s.SetPixel(x, y, pix[i])
			}
			i++
		}
	}
}

// Disable restores the background once and frees the snapshot.
func (e *Engine) Disable() {
	e.Restore()
	e.buf.Release()
	e.region = image.Rectangle{}
	e.paint.Reset(image.Rectangle{})
}
