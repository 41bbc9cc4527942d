package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"dial/face/gfx"
)

// guard turns a panic inside step into the fault screen and an error. Once
// faulted, the dial stays halted.
func (d *dial) guard(step func() error) func() error {
	faulted := false
	return func() (err error) {
		if faulted {
			return errFaulted
		}
		defer func() {
			if r := recover(); r != nil {
				faulted = true
				err = d.fault(r, debug.Stack())
			}
		}()
		return step()
	}
}

var errFaulted = errors.New("dial halted after fault")

func (d *dial) fault(v any, stack []byte) error {
	d.log.Error("dial fault", "panic", fmt.Sprint(v))
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			d.h.Logger().WriteLineString(line)
		}
	}

	lines := []string{"Dial fault:", fmt.Sprintf("%v", v)}
	drawFault(d.fb, lines)
	d.fb.SetBrightness(255)
	d.fb.Invert(false)
	if err := d.fb.Flush(); err != nil {
		d.log.Error("fault screen present failed", "err", err)
	}

	return fmt.Errorf("dial fault: %v", v)
}

// drawFault prints lines black on white inside the square inscribed in the
// round face, wrapping at the column limit.
func drawFault(fb *gfx.FB, lines []string) {
	fb.Clear(gfx.RGB(255, 255, 255))

	font := gfx.FontSmall
	cw := gfx.TextWidth(font, "0")
	lh := gfx.TextBox(font, "0").Dy() + 3
	if cw <= 0 || lh <= 0 {
		return
	}

	// 0.7 is a little under 1/sqrt(2).
	side := fb.Width() * 7 / 10
	x0 := (fb.Width() - side) / 2
	y := (fb.Height()-side)/2 + lh
	bottom := (fb.Height() + side) / 2
	cols := max(side/cw, 1)

	fg := gfx.RGB(0, 0, 0)
	for _, line := range lines {
		for len(line) > 0 {
			if y > bottom {
				return
			}
			chunk, rest := takeRunes(line, cols)
			gfx.DrawText(fb, font, x0, y, chunk, fg)
			y += lh
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
