package ring

import (
	"fmt"
	"image"

	"dial/face/gfx"
	"dial/face/theme"
)

// Label is the text block in the middle of the face.
type Label struct {
	ThemeIndex  int
	StepPercent int
	Cursor      image.Point
}

// widest coordinate line, used to clear the previous one
const coordTemplate = "X:888  Y:888"

// DrawLabel paints the label over whatever is in the middle of s.
func DrawLabel(s gfx.Surface, l Label) {
	th := theme.At(l.ThemeIndex)
	c := gfx.Center(s)

	title := fmt.Sprintf("%s  (%d/%d)", th.Name, l.ThemeIndex+1, theme.Count())
	gfx.DrawTextCentered(s, gfx.FontMedium, c.X, c.Y-14, title, th.Primary, th.BG)

	gfx.DrawTextCentered(s, gfx.FontSmall, c.X, c.Y, fmt.Sprintf("Rotate: brightness (%d%%)", l.StepPercent), th.Text, th.BG)
	gfx.DrawTextCentered(s, gfx.FontSmall, c.X, c.Y+12, "Tap: ping  BtnA: theme  Hold: burst", th.Text, th.BG)
	gfx.DrawTextCentered(s, gfx.FontSmall, c.X, c.Y+24, "Long press: invert", th.Text, th.BG)

	box := gfx.TextBox(gfx.FontSmall, coordTemplate)
	clear := box.Sub(box.Min.Add(box.Max).Div(2)).Add(image.Pt(c.X, c.Y+36)).Inset(-2)
	s.FillRect(clear, th.BG)
	gfx.DrawTextCentered(s, gfx.FontSmall, c.X, c.Y+36, fmt.Sprintf("X:%d  Y:%d", l.Cursor.X, l.Cursor.Y), th.Text, th.BG)
}
