package logging

import (
	"log/slog"
	"strings"
	"testing"
)

type lines struct {
	got []string
}

func (l *lines) WriteLineString(s string) { l.got = append(l.got, s) }
func (l *lines) WriteLineBytes(b []byte)  { l.got = append(l.got, string(b)) }

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseLevel(%q)=%v,%v", tt.in, got, err)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Fatal("accepted trace")
	}
}

func TestNewWritesLinesAtLevel(t *testing.T) {
	sink := &lines{}
	log := New(sink, slog.LevelInfo)
	log.Debug("hidden")
	log.Info("boot", "component", "app", "version", "dev")

	if len(sink.got) != 1 {
		t.Fatalf("lines=%q", sink.got)
	}
	line := sink.got[0]
	if !strings.Contains(line, "msg=boot") || !strings.Contains(line, "component=app") {
		t.Fatalf("line=%q", line)
	}
	if strings.HasSuffix(line, "\n") {
		t.Fatal("newline passed through")
	}
}

func TestLineWriterJoinsPartialWrites(t *testing.T) {
	sink := &lines{}
	w := &lineWriter{l: sink}
	w.Write([]byte("ab"))
	w.Write([]byte("c\nde"))
	w.Write([]byte("f\n\n"))
	want := []string{"abc", "def", ""}
	if len(sink.got) != len(want) {
		t.Fatalf("got=%q", sink.got)
	}
	for i := range want {
		if sink.got[i] != want[i] {
			t.Fatalf("got=%q", sink.got)
		}
	}
}
