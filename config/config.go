// Package config is the dial's tunable configuration. Default returns the
// stock values; a YAML file may override any subset of them.
package config

import (
	"errors"
	"fmt"

	"dial/internal/logging"
	"dial/tone"
)

// Config is the complete configuration.
type Config struct {
	Encoder   EncoderConfig   `yaml:"encoder"`
	Touch     TouchConfig     `yaml:"touch"`
	Cursor    CursorConfig    `yaml:"cursor"`
	Ping      PingConfig      `yaml:"ping"`
	Ring      RingConfig      `yaml:"ring"`
	Starburst StarburstConfig `yaml:"starburst"`
	Button    ButtonConfig    `yaml:"button"`
	Overlay   OverlayConfig   `yaml:"overlay"`
	Audio     AudioConfig     `yaml:"audio"`
	Debug     DebugConfig     `yaml:"debug"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// EncoderConfig maps encoder ticks to brightness.
type EncoderConfig struct {
	// Divisor is raw ticks per logical step (ticks per detent).
	Divisor        int `yaml:"divisor"`
	StepPercent    int `yaml:"step_percent"`
	MaxPercent     int `yaml:"max_percent"`
	InitialPercent int `yaml:"initial_percent"`
}

type TouchConfig struct {
	TapMaxMovePx int    `yaml:"tap_max_move_px"`
	LongPressMs  uint32 `yaml:"long_press_ms"`
}

type CursorConfig struct {
	Radius int `yaml:"radius"`
}

type PingConfig struct {
	StartRadius int    `yaml:"start_radius"`
	Step        int    `yaml:"step"`
	IntervalMs  uint32 `yaml:"interval_ms"`
}

type RingConfig struct {
	Ticks      int     `yaml:"ticks"`
	StartDeg   float64 `yaml:"start_deg"`
	SweepDeg   float64 `yaml:"sweep_deg"`
	MajorLen   int     `yaml:"major_len"`
	MinorLen   int     `yaml:"minor_len"`
	MajorEvery int     `yaml:"major_every"`
	EdgeMargin int     `yaml:"edge_margin"`
	Dim        float32 `yaml:"dim"`
}

type StarburstConfig struct {
	Rays    int    `yaml:"rays"`
	Steps   int    `yaml:"steps"`
	FrameMs uint32 `yaml:"frame_ms"`
}

type ButtonConfig struct {
	HoldMs uint32 `yaml:"hold_ms"`
}

type OverlayConfig struct {
	// MaxSnapshotPixels caps an overlay's background snapshot; larger frames
	// are drawn without restore. 0 means no cap.
	MaxSnapshotPixels int `yaml:"max_snapshot_pixels"`
}

type AudioConfig struct {
	Mute      bool       `yaml:"mute"`
	Volume    uint8      `yaml:"volume"`
	Boot      tone.Tone  `yaml:"boot"`
	ClickUp   tone.Tone  `yaml:"click_up"`
	ClickDown tone.Tone  `yaml:"click_down"`
	ConfirmUp tone.Chirp `yaml:"confirm_up"`
	Invert    tone.Chirp `yaml:"invert"`
	Pop       tone.Chirp `yaml:"pop"`
	Starburst tone.Chirp `yaml:"starburst"`
}

// DebugConfig turns on the per-category debug lines.
type DebugConfig struct {
	Touch     bool `yaml:"touch"`
	Button    bool `yaml:"button"`
	Rotary    bool `yaml:"rotary"`
	Ping      bool `yaml:"ping"`
	Heartbeat bool `yaml:"heartbeat"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a fully-populated Config.
func Default() Config {
	return Config{
		Encoder: EncoderConfig{
			Divisor:        4,
			StepPercent:    10,
			MaxPercent:     100,
			InitialPercent: 80,
		},
		Touch: TouchConfig{
			TapMaxMovePx: 20,
			LongPressMs:  1000,
		},
		Cursor: CursorConfig{Radius: 12},
		Ping: PingConfig{
			StartRadius: 6,
			Step:        12,
			IntervalMs:  16,
		},
		Ring: RingConfig{
			Ticks:      100,
			StartDeg:   -90,
			SweepDeg:   360,
			MajorLen:   18,
			MinorLen:   12,
			MajorEvery: 10,
			EdgeMargin: 1,
			Dim:        0.35,
		},
		Starburst: StarburstConfig{
			Rays:    16,
			Steps:   12,
			FrameMs: 14,
		},
		Button: ButtonConfig{HoldMs: 500},
		Audio: AudioConfig{
			Volume:    180,
			Boot:      tone.Tone{Freq: 2000, Ms: 200},
			ClickUp:   tone.Tone{Freq: 1800, Ms: 40},
			ClickDown: tone.Tone{Freq: 1000, Ms: 40},
			ConfirmUp: tone.Chirp{
				First:  tone.Tone{Freq: 1200, Ms: 70},
				Second: tone.Tone{Freq: 1800, Ms: 90},
				GapMs:  80,
			},
			Invert: tone.Chirp{
				First:  tone.Tone{Freq: 900, Ms: 80},
				Second: tone.Tone{Freq: 600, Ms: 100},
				GapMs:  70,
			},
			Pop: tone.Chirp{
				First:  tone.Tone{Freq: 1200, Ms: 50},
				Second: tone.Tone{Freq: 1800, Ms: 60},
				GapMs:  60,
			},
			Starburst: tone.Chirp{
				First:  tone.Tone{Freq: 1500, Ms: 60},
				Second: tone.Tone{Freq: 2100, Ms: 70},
				GapMs:  50,
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	e := c.Encoder
	if e.Divisor <= 0 {
		return errors.New("encoder.divisor must be > 0")
	}
	if e.StepPercent <= 0 {
		return errors.New("encoder.step_percent must be > 0")
	}
	if e.MaxPercent <= 0 {
		return errors.New("encoder.max_percent must be > 0")
	}
	if e.InitialPercent < 0 || e.InitialPercent > e.MaxPercent {
		return fmt.Errorf("encoder.initial_percent must be between 0 and %d", e.MaxPercent)
	}

	if c.Touch.TapMaxMovePx < 0 {
		return errors.New("touch.tap_max_move_px must be >= 0")
	}
	if c.Cursor.Radius < 0 {
		return errors.New("cursor.radius must be >= 0")
	}
	if c.Ping.StartRadius < 0 {
		return errors.New("ping.start_radius must be >= 0")
	}
	if c.Ping.Step <= 0 {
		return errors.New("ping.step must be > 0")
	}

	r := c.Ring
	if r.Ticks <= 0 {
		return errors.New("ring.ticks must be > 0")
	}
	if r.SweepDeg == 0 {
		return errors.New("ring.sweep_deg must not be 0")
	}
	if r.MajorLen < 0 || r.MinorLen < 0 {
		return errors.New("ring tick lengths must be >= 0")
	}
	if r.MajorEvery <= 0 {
		return errors.New("ring.major_every must be > 0")
	}
	if r.EdgeMargin < 0 {
		return errors.New("ring.edge_margin must be >= 0")
	}
	if r.Dim < 0 || r.Dim > 1 {
		return errors.New("ring.dim must be between 0 and 1")
	}

	if c.Starburst.Rays <= 0 || c.Starburst.Steps <= 0 {
		return errors.New("starburst.rays and starburst.steps must be > 0")
	}
	if c.Overlay.MaxSnapshotPixels < 0 {
		return errors.New("overlay.max_snapshot_pixels must be >= 0")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
