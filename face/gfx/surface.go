// Package gfx draws on the dial's RGB565 panel.
package gfx

import "image"

// Surface is everything the face needs from a display: raster primitives,
// region read-back for overlays, and the panel controls.
//
// Coordinates outside the surface are clipped silently.
type Surface interface {
	Width() int
	Height() int

	SetPixel(x, y int, c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawCircle(cx, cy, r int, c Color)
	FillCircle(cx, cy, r int, c Color)
	FillRect(r image.Rectangle, c Color)

	// ReadRegion copies r, row-major, into dst. r must lie within the surface
	// and dst must hold r.Dx()*r.Dy() pixels.
	ReadRegion(r image.Rectangle, dst []Color)
	// WriteRegion is the inverse of ReadRegion.
	WriteRegion(r image.Rectangle, src []Color)

	SetBrightness(level uint8)
	Invert(on bool)

	// Watch registers w; from then on every pixel write inside w's
	// rectangle is recorded in it.
	Watch(w *Watch)
	// Quiet runs fn without recording its writes in any Watch. Overlays draw
	// and restore their own frames this way.
	Quiet(fn func())
}

// Bounds returns the rectangle covered by s.
func Bounds(s Surface) image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}

// Center returns the middle pixel of s.
func Center(s Surface) image.Point {
	return image.Pt(s.Width()/2, s.Height()/2)
}
