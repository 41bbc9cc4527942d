// Package app is the dial's poll loop: each step samples the encoder, touch
// panel and button, feeds them through the input reducers and redraws what
// changed.
package app

import (
	"fmt"
	"image"
	"log/slog"

	"dial/config"
	"dial/deadline"
	"dial/face/gfx"
	"dial/face/overlay"
	"dial/face/ring"
	"dial/face/theme"
	"dial/fx"
	"dial/hal"
	"dial/input/gesture"
	"dial/input/level"
	"dial/input/quant"
	"dial/internal/buildinfo"
	"dial/internal/logging"
	"dial/tone"
)

// dial owns all mutable state. Components get only the handles they need.
type dial struct {
	h   hal.HAL
	cfg config.Config
	log *slog.Logger

	fb     *gfx.FB
	quant  *quant.Quantizer
	bright *level.Level
	touch  *gesture.Classifier
	cursor *overlay.Crosshair
	ping   *overlay.Ping
	ring   *ring.Renderer
	burst  *fx.Starburst
	tones  *tone.Player

	themeIdx  int
	inverted  bool
	heartbeat deadline.Every
}

// New draws the start screen and returns the per-tick step function.
func New(h hal.HAL, cfg config.Config) func() error {
	d := newDial(h, cfg)
	return d.guard(d.step)
}

func newDial(h hal.HAL, cfg config.Config) *dial {
	lvl, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	log := logging.New(h.Logger(), lvl)

	fb := gfx.NewFB(h.Display())
	alloc := overlay.Limit(cfg.Overlay.MaxSnapshotPixels, overlay.HeapAllocator)

	d := &dial{
		h:      h,
		cfg:    cfg,
		log:    log,
		fb:     fb,
		quant:  quant.New(cfg.Encoder.Divisor),
		bright: level.New(cfg.Encoder.InitialPercent, cfg.Encoder.StepPercent, cfg.Encoder.MaxPercent),
		touch: gesture.New(gesture.Config{
			TapMaxMovePx: cfg.Touch.TapMaxMovePx,
			LongPressMs:  cfg.Touch.LongPressMs,
		}),
		cursor: overlay.NewCrosshair(fb, alloc, cfg.Cursor.Radius),
		ping: overlay.NewPing(fb, alloc, overlay.PingConfig{
			StartRadius: cfg.Ping.StartRadius,
			Step:        cfg.Ping.Step,
			IntervalMs:  cfg.Ping.IntervalMs,
		}),
		ring: ring.New(fb, ring.Config{
			Ticks:      cfg.Ring.Ticks,
			StartDeg:   cfg.Ring.StartDeg,
			SweepDeg:   cfg.Ring.SweepDeg,
			MajorLen:   cfg.Ring.MajorLen,
			MinorLen:   cfg.Ring.MinorLen,
			MajorEvery: cfg.Ring.MajorEvery,
			EdgeMargin: cfg.Ring.EdgeMargin,
			Dim:        cfg.Ring.Dim,
		}),
		burst: fx.NewStarburst(fb, fx.StarburstConfig{
			Rays:    cfg.Starburst.Rays,
			Steps:   cfg.Starburst.Steps,
			FrameMs: cfg.Starburst.FrameMs,
		}),
		tones: tone.New(h.Speaker(), cfg.Audio.Mute),
	}
	d.ring.OnRedraw(d.drawLabel)
	d.ring.OnRedraw(func() { d.cursor.Repair(d.theme().Accent) })
	d.ring.OnRedraw(d.ping.Repair)

	log.Info("dial starting", "version", buildinfo.Short(), "width", fb.Width(), "height", fb.Height())

	d.cursor.Place(gfx.Center(fb))
	fb.SetBrightness(d.bright.Byte())
	d.drawScene()

	h.Speaker().SetVolume(cfg.Audio.Volume)
	d.tones.Play(cfg.Audio.Boot)

	// Ticks turned during boot are not a request.
	h.Encoder().PollAndResetDelta()
	return d
}

func (d *dial) theme() theme.Theme { return theme.At(d.themeIdx) }

func (d *dial) drawScene() {
	d.fb.Clear(d.theme().BG)
	d.ring.Draw(d.bright.Percent(), d.themeIdx, true)
}

func (d *dial) drawLabel() {
	ring.DrawLabel(d.fb, ring.Label{
		ThemeIndex:  d.themeIdx,
		StepPercent: d.cfg.Encoder.StepPercent,
		Cursor:      d.cursor.Pos(),
	})
}

func (d *dial) redrawRing(force bool) {
	d.ring.Draw(d.bright.Percent(), d.themeIdx, force)
}

func (d *dial) step() error {
	now := d.h.Clock().NowMillis()

	// The starburst owns the face while it runs; inputs wait in the HAL.
	if d.burst.Active() {
		if d.burst.Step(now) {
			d.redrawRing(true)
			if d.cfg.Debug.Button {
				d.log.Debug("starburst end", "component", "effect")
			}
		}
	} else {
		d.pollEncoder()
		d.pollTouch(now)
		if d.ping.Step(now) {
			d.redrawRing(true)
			if d.cfg.Debug.Ping {
				d.log.Debug("ping end", "component", "ping")
			}
		}
		d.pollButton(now)
	}

	d.tones.Service(now)

	if d.cfg.Debug.Heartbeat && d.heartbeat.Tick(now, 1000) {
		p := d.cursor.Pos()
		d.log.Debug("heartbeat",
			"component", "dbg",
			"br", d.bright.Percent(),
			"theme", d.themeIdx,
			"touch", d.touch.Active(),
			"drag", d.touch.Moved(),
			"x", p.X,
			"y", p.Y,
			"inv", d.inverted,
		)
	}

	if err := d.fb.Flush(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

func (d *dial) pollEncoder() {
	steps := d.quant.Quantize(d.h.Encoder().PollAndResetDelta())
	if steps == 0 {
		return
	}
	prev, changed := d.bright.Apply(steps)
	d.fb.SetBrightness(d.bright.Byte())
	if changed {
		pct := d.bright.Percent()
		if pct > prev {
			d.tones.Play(d.cfg.Audio.ClickUp)
		} else {
			d.tones.Play(d.cfg.Audio.ClickDown)
		}
		if d.cfg.Debug.Rotary {
			d.log.Debug("brightness", "component", "rot", "delta", pct-prev, "br", pct)
		}
	}
	d.redrawRing(false)
}

func (d *dial) clampToDisplay(p image.Point) image.Point {
	p.X = max(0, min(p.X, d.fb.Width()-1))
	p.Y = max(0, min(p.Y, d.fb.Height()-1))
	return p
}

func (d *dial) pollTouch(now uint32) {
	t := d.h.Touch()
	touching := t.ContactCount() > 0
	var p image.Point
	if touching {
		p = d.clampToDisplay(t.Contact(0))
	}
	ev := d.touch.Update(now, touching, p)

	switch ev.Kind {
	case gesture.Press, gesture.Hold:
		if d.cfg.Debug.Touch {
			switch {
			case ev.Kind == gesture.Press:
				d.log.Debug("press", "component", "touch", "x", p.X, "y", p.Y)
			case ev.DragStarted:
				d.log.Debug("drag start", "component", "touch", "d2", ev.Dist2)
			}
		}
		// The label shows the coordinates live; lift the cursor so the label
		// does not end up in its snapshot.
		d.cursor.Lift()
		d.cursor.Place(p)
		d.drawLabel()
		d.cursor.MoveTo(p, d.theme().Accent)

	case gesture.LongPress:
		d.inverted = !d.inverted
		d.fb.Invert(d.inverted)
		d.tones.Chirp(now, d.cfg.Audio.Invert)
		if d.cfg.Debug.Touch {
			d.log.Debug("release", "component", "touch", "dur", ev.Duration, "action", "invert")
		}

	case gesture.Tap:
		d.ping.Start(now, ev.Pos, d.theme().Ripple)
		d.tones.Chirp(now, d.cfg.Audio.Pop)
		if d.cfg.Debug.Touch {
			d.log.Debug("release", "component", "touch", "dur", ev.Duration, "action", "ping")
		}

	case gesture.Drag:
		d.redrawRing(true)
		if d.cfg.Debug.Touch {
			d.log.Debug("release", "component", "touch", "dur", ev.Duration, "action", "refresh")
		}
	}
}

func (d *dial) pollButton(now uint32) {
	b := d.h.Button()
	if b.WasPressed() {
		d.themeIdx = theme.Next(d.themeIdx)
		d.drawScene()
		d.tones.Chirp(now, d.cfg.Audio.ConfirmUp)
		if d.cfg.Debug.Button {
			d.log.Debug("press", "component", "btn", "theme", d.themeIdx+1)
		}
	}
	if b.WasHeld() {
		if d.cfg.Debug.Button {
			d.log.Debug("hold", "component", "btn", "action", "starburst")
		}
		d.tones.Chirp(now, d.cfg.Audio.Starburst)
		d.burst.Start(now, d.theme())
	}
}
