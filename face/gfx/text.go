package gfx

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// Fonts used by the face, smallest first.
var (
	FontSmall  tinyfont.Fonter = &proggy.TinySZ8pt7b
	FontMedium tinyfont.Fonter = &freemono.Bold9pt7b
	FontLarge  tinyfont.Fonter = &freemono.Bold12pt7b
)

// displayer lets tinyfont draw on a Surface.
type displayer struct {
	s Surface
}

var _ drivers.Displayer = displayer{}

func (d displayer) Size() (x, y int16) {
	return int16(d.s.Width()), int16(d.s.Height())
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.s.SetPixel(int(x), int(y), FromRGBA(c))
}

func (d displayer) Display() error { return nil }

// TextBox returns the ink box of text relative to its origin on the baseline.
func TextBox(f tinyfont.Fonter, text string) image.Rectangle {
	var box image.Rectangle
	x := 0
	first := true
	for _, r := range text {
		info := f.GetGlyph(r).Info()
		g := image.Rect(
			x+int(info.XOffset),
			int(info.YOffset),
			x+int(info.XOffset)+int(info.Width),
			int(info.YOffset)+int(info.Height),
		)
		if first {
			box = g
			first = false
		} else {
			box = box.Union(g)
		}
		x += int(info.XAdvance)
	}
	if box.Max.X < x {
		box.Max.X = x
	}
	return box
}

// DrawTextCentered draws text centred on (cx, cy), painting bg behind the
// whole line first so it can overwrite a previous label in place. It returns
// the rectangle it painted.
func DrawTextCentered(s Surface, f tinyfont.Fonter, cx, cy int, text string, fg, bg Color) image.Rectangle {
	box := TextBox(f, text)
	if box.Empty() {
		return image.Rectangle{}
	}
	ox := cx - (box.Min.X+box.Max.X)/2
	oy := cy - (box.Min.Y+box.Max.Y)/2
	area := box.Add(image.Pt(ox, oy)).Inset(-1)
	s.FillRect(area, bg)
	tinyfont.WriteLine(displayer{s: s}, f, int16(ox), int16(oy), text, fg.RGBA())
	return area
}

// DrawText draws text with its baseline starting at (x, y), without a background.
func DrawText(s Surface, f tinyfont.Fonter, x, y int, text string, fg Color) {
	tinyfont.WriteLine(displayer{s: s}, f, int16(x), int16(y), text, fg.RGBA())
}

// TextWidth is the advance width of text in pixels.
func TextWidth(f tinyfont.Fonter, text string) int {
	_, outbox := tinyfont.LineWidth(f, text)
	return int(outbox)
}
