package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestParseOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := Parse([]byte(`
encoder:
  divisor: 2
audio:
  mute: true
  pop:
    first: {freq: 1000, ms: 30}
logging:
  level: debug
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Encoder.Divisor != 2 || cfg.Encoder.StepPercent != 10 {
		t.Fatalf("encoder=%+v", cfg.Encoder)
	}
	if !cfg.Audio.Mute || cfg.Audio.Volume != 180 {
		t.Fatalf("audio mute=%v volume=%d", cfg.Audio.Mute, cfg.Audio.Volume)
	}
	if cfg.Audio.Pop.First.Freq != 1000 || cfg.Audio.Pop.Second.Freq != 1800 {
		t.Fatalf("pop=%+v", cfg.Audio.Pop)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level=%q", cfg.Logging.Level)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "encoder:\n  divisr: 2\n"},
		{"zero divisor", "encoder:\n  divisor: 0\n"},
		{"initial above max", "encoder:\n  initial_percent: 120\n"},
		{"zero sweep", "ring:\n  sweep_deg: 0\n"},
		{"no ticks", "ring:\n  ticks: 0\n"},
		{"dim out of range", "ring:\n  dim: 1.5\n"},
		{"negative move", "touch:\n  tap_max_move_px: -1\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"trailing document", "encoder:\n  divisor: 2\n---\nencoder:\n  divisor: 3\n"},
		{"malformed trailing document", "encoder:\n  divisor: 2\n---\n[unclosed\n"},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.doc)); err == nil {
			t.Fatalf("%s: accepted", tt.name)
		}
	}
}

func TestParseEmptyGivesDefaults(t *testing.T) {
	for _, doc := range []string{"", "\n", "# nothing set yet\n"} {
		cfg, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("%q: %v", doc, err)
		}
		if cfg != Default() {
			t.Fatalf("%q: not the defaults", doc)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dial.yaml")
	if err := os.WriteFile(path, []byte("cursor:\n  radius: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cursor.Radius != 8 {
		t.Fatalf("radius=%d", cfg.Cursor.Radius)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
