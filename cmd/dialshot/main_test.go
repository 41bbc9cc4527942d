package main

import (
	"image"
	"image/color"
	"testing"
)

func TestRenderMasksOutsideDisc(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.SetRGBA(x, y, white)
		}
	}
	bg := color.RGBA{0, 0, 255, 255}

	out := render(src, 3, true, bg)
	if got := out.Bounds(); got != image.Rect(0, 0, 30, 30) {
		t.Fatalf("bounds=%v", got)
	}
	if got := out.RGBAAt(15, 15); got != white {
		t.Fatalf("centre=%v", got)
	}
	if got := out.RGBAAt(0, 0); got != bg {
		t.Fatalf("corner=%v want bg", got)
	}

	square := render(src, 1, false, bg)
	if got := square.RGBAAt(0, 0); got != white {
		t.Fatalf("unmasked corner=%v", got)
	}
}
