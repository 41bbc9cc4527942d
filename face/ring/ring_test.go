package ring

import (
	"image"
	"testing"

	"dial/face/gfx"
	"dial/face/theme"
	"dial/hal"
)

// countingSurface counts every drawing call that reaches the surface.
type countingSurface struct {
	gfx.Surface
	draws int
}

func (c *countingSurface) SetPixel(x, y int, col gfx.Color) {
	c.draws++
	c.Surface.SetPixel(x, y, col)
}

func (c *countingSurface) DrawLine(x0, y0, x1, y1 int, col gfx.Color) {
	c.draws++
	c.Surface.DrawLine(x0, y0, x1, y1, col)
}

func (c *countingSurface) DrawCircle(cx, cy, r int, col gfx.Color) {
	c.draws++
	c.Surface.DrawCircle(cx, cy, r, col)
}

func (c *countingSurface) FillCircle(cx, cy, r int, col gfx.Color) {
	c.draws++
	c.Surface.FillCircle(cx, cy, r, col)
}

func (c *countingSurface) FillRect(r image.Rectangle, col gfx.Color) {
	c.draws++
	c.Surface.FillRect(r, col)
}

func (c *countingSurface) WriteRegion(r image.Rectangle, src []gfx.Color) {
	c.draws++
	c.Surface.WriteRegion(r, src)
}

var testConfig = Config{
	Ticks:      100,
	StartDeg:   -90,
	SweepDeg:   360,
	MajorLen:   18,
	MinorLen:   12,
	MajorEvery: 10,
	EdgeMargin: 1,
	Dim:        0.35,
}

func newCounting() *countingSurface {
	return &countingSurface{Surface: gfx.NewFB(hal.NewMemDisplay(240, 240))}
}

func TestSecondIdenticalDrawIsSkipped(t *testing.T) {
	s := newCounting()
	r := New(s, testConfig)
	hooks := 0
	r.OnRedraw(func() { hooks++ })

	if !r.Draw(80, 0, false) {
		t.Fatal("first draw skipped")
	}
	if s.draws == 0 || hooks != 1 {
		t.Fatalf("draws=%d hooks=%d", s.draws, hooks)
	}

	s.draws = 0
	if r.Draw(80, 0, false) {
		t.Fatal("identical draw not skipped")
	}
	if s.draws != 0 || hooks != 1 {
		t.Fatalf("skipped draw still drew: draws=%d hooks=%d", s.draws, hooks)
	}
}

func TestRedrawOnChangeOrForce(t *testing.T) {
	s := newCounting()
	r := New(s, testConfig)
	r.Draw(80, 0, false)

	tests := []struct {
		name  string
		pct   int
		theme int
		force bool
	}{
		{"brightness", 90, 0, false},
		{"theme", 90, 1, false},
		{"force", 90, 1, true},
	}
	for _, tt := range tests {
		s.draws = 0
		if !r.Draw(tt.pct, tt.theme, tt.force) || s.draws == 0 {
			t.Fatalf("%s: not redrawn", tt.name)
		}
	}
}

func TestLitRounding(t *testing.T) {
	r := New(newCounting(), Config{Ticks: 7, MajorEvery: 1})
	tests := []struct {
		pct, want int
	}{
		{0, 0},
		{7, 0},
		{8, 1},
		{50, 4},
		{100, 7},
		{150, 7},
		{-10, 0},
	}
	for _, tt := range tests {
		if got := r.Lit(tt.pct); got != tt.want {
			t.Fatalf("Lit(%d)=%d want %d", tt.pct, got, tt.want)
		}
	}
}

func TestLitTicksUsePrimary(t *testing.T) {
	d := hal.NewMemDisplay(240, 240)
	s := gfx.NewFB(d)
	r := New(s, testConfig)
	r.Draw(100, 0, true)

	th := theme.At(0)
	// With start -90 the first tick points straight up from the centre.
	if got := gfx.Color(d.Pixel(120, 120-119+2)); got != th.Primary {
		t.Fatalf("top tick=%#04x want %#04x", got, th.Primary)
	}

	r.Draw(0, 0, true)
	if got := gfx.Color(d.Pixel(120, 120-119+2)); got != th.Text.Dim(0.35) {
		t.Fatalf("unlit top tick=%#04x", got)
	}
}

func TestDrawLabelKeepsBackgroundAroundText(t *testing.T) {
	d := hal.NewMemDisplay(240, 240)
	s := gfx.NewFB(d)
	th := theme.At(2)
	s.Clear(th.BG)
	DrawLabel(s, Label{ThemeIndex: 2, StepPercent: 10, Cursor: image.Pt(120, 7)})
	DrawLabel(s, Label{ThemeIndex: 2, StepPercent: 10, Cursor: image.Pt(3, 4)})

	// Corners are far from the label.
	if gfx.Color(d.Pixel(0, 0)) != th.BG || gfx.Color(d.Pixel(239, 239)) != th.BG {
		t.Fatal("label painted outside its area")
	}
	ink := 0
	for x := 0; x < 240; x++ {
		if gfx.Color(d.Pixel(x, 120+36)) == th.Text {
			ink++
		}
	}
	if ink == 0 {
		t.Fatal("coordinate line not drawn")
	}
}
