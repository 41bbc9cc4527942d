// Package theme holds the dial's colour schemes.
package theme

import "dial/face/gfx"

// Theme is one colour scheme. Text is chosen to complement Primary.
type Theme struct {
	Name    string
	BG      gfx.Color
	Primary gfx.Color
	Accent  gfx.Color
	Text    gfx.Color
	Ripple  gfx.Color
}

var all = []Theme{
	{"Carbon", gfx.RGB(8, 8, 8), gfx.RGB(0, 180, 255), gfx.RGB(255, 255, 255), gfx.RGB(255, 160, 60), gfx.RGB(255, 220, 0)},
	{"Neon", gfx.RGB(10, 6, 18), gfx.RGB(0, 255, 170), gfx.RGB(255, 0, 180), gfx.RGB(255, 120, 200), gfx.RGB(255, 255, 0)},
	{"Ember", gfx.RGB(24, 10, 32), gfx.RGB(255, 110, 0), gfx.RGB(255, 40, 80), gfx.RGB(80, 160, 255), gfx.RGB(255, 200, 0)},
	{"Ocean", gfx.RGB(4, 10, 26), gfx.RGB(0, 150, 255), gfx.RGB(220, 240, 255), gfx.RGB(255, 160, 60), gfx.RGB(0, 220, 255)},
	{"Lime", gfx.RGB(12, 18, 12), gfx.RGB(140, 255, 80), gfx.RGB(255, 255, 255), gfx.RGB(255, 120, 180), gfx.RGB(170, 255, 120)},
	{"Sunset", gfx.RGB(20, 6, 28), gfx.RGB(255, 200, 0), gfx.RGB(255, 60, 60), gfx.RGB(180, 120, 255), gfx.RGB(255, 220, 120)},
}

// Count is the number of themes.
func Count() int { return len(all) }

// At returns theme i, wrapping in both directions.
func At(i int) Theme {
	n := len(all)
	return all[((i%n)+n)%n]
}

// Next returns the index after i.
func Next(i int) int { return (i + 1) % len(all) }
