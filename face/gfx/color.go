package gfx

import "image/color"

// Color is an RGB565 pixel value: rrrrrggggggbbbbb.
type Color uint16

// RGB packs an 8-bit-per-channel colour, dropping the low bits.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3))
}

// RGB returns the colour with each channel shifted back up to 8 bits.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c>>11) << 3, uint8(c>>5&0x3F) << 2, uint8(c&0x1F) << 3
}

// RGBA is the colour as image/color sees it, fully opaque.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Dim scales every channel by k, clamped to [0,1]. 0 is black, 1 is c.
func (c Color) Dim(k float32) Color {
	switch {
	case k <= 0:
		return 0
	case k >= 1:
		return c
	}
	r, g, b := c.RGB()
	return RGB(uint8(float32(r)*k), uint8(float32(g)*k), uint8(float32(b)*k))
}

// FromRGBA converts any colour to RGB565.
func FromRGBA(c color.RGBA) Color {
	return RGB(c.R, c.G, c.B)
}
