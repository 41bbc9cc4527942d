//go:build !tinygo

// Command dialshot replays an input script against the dial on a virtual
// clock and writes the final frame as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"dial/app"
	"dial/config"
	"dial/hal"
)

func main() {
	var (
		scriptPath = flag.String("script", "", "YAML input script to replay.")
		cfgPath    = flag.String("config", "", "YAML file overriding the default configuration.")
		outPath    = flag.String("out", "dial.png", "Output PNG.")
		hz         = flag.Int("hz", 60, "Virtual tick rate.")
		settle     = flag.Uint64("ticks", 0, "Total ticks to run (0 = stop when the script ends).")
		scale      = flag.Int("scale", 2, "Output scale factor.")
		round      = flag.Bool("round", true, "Mask everything outside the round panel.")
		bg         = flag.String("bg", "black", "SVG colour name for the area outside the panel.")
	)
	flag.Parse()

	if *scriptPath == "" {
		fatalf("usage: dialshot -script steps.yaml [-out dial.png] [-ticks N] [-scale 2] [-config dial.yaml]")
	}
	if *scale <= 0 {
		fatalf("scale must be > 0")
	}
	bgColor, ok := colornames.Map[strings.ToLower(*bg)]
	if !ok {
		fatalf("unknown colour name: %s", *bg)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fatalf("%v", err)
		}
	}
	script, err := hal.LoadScript(*scriptPath)
	if err != nil {
		fatalf("%v", err)
	}

	var shot *image.RGBA
	err = hal.RunHeadless(context.Background(), func(h hal.HAL) func() error {
		return app.New(h, cfg)
	}, hal.HeadlessConfig{
		Enabled: true,
		Hz:      *hz,
		Ticks:   *settle,
		Virtual: true,
		Script:  script,
		Host:    hal.HostConfig{HoldMs: cfg.Button.HoldMs, Log: os.Stderr},
		Done: func(h hal.HAL) error {
			var err error
			shot, err = hal.Screenshot(h, false)
			return err
		},
	})
	if err != nil {
		fatalf("run: %v", err)
	}

	out := render(shot, *scale, *round, bgColor)
	if err := writePNG(*outPath, out); err != nil {
		fatalf("write: %v", err)
	}
}

// render scales src by k onto a bg-filled canvas, optionally through a disc
// mask the size of the panel.
func render(src *image.RGBA, k int, round bool, bg color.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*k, b.Dy()*k))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	var opts *draw.Options
	if round {
		opts = &draw.Options{SrcMask: discMask(b), SrcMaskP: b.Min}
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Over, opts)
	return dst
}

func discMask(b image.Rectangle) *image.Alpha {
	m := image.NewAlpha(b)
	w, h := b.Dx(), b.Dy()
	d := min(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := 2*x - (w - 1)
			dy := 2*y - (h - 1)
			if dx*dx+dy*dy <= d*d {
				m.SetAlpha(b.Min.X+x, b.Min.Y+y, color.Alpha{A: 0xFF})
			}
		}
	}
	return m
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
