package level

import "testing"

func TestApplyClamps(t *testing.T) {
	l := New(80, 10, 100)

	prev, changed := l.Apply(3)
	if prev != 80 || !changed || l.Percent() != 100 {
		t.Fatalf("prev=%d changed=%v pct=%d", prev, changed, l.Percent())
	}
	if _, changed := l.Apply(1); changed {
		t.Fatal("changed while pinned at max")
	}
	l.Apply(-20)
	if l.Percent() != 0 {
		t.Fatalf("pct=%d want 0", l.Percent())
	}
	if _, changed := l.Apply(-1); changed {
		t.Fatal("changed while pinned at 0")
	}
}

func TestByte(t *testing.T) {
	tests := []struct {
		pct  int
		want uint8
	}{
		{0, 0},
		{50, 127},
		{80, 204},
		{100, 255},
	}
	for _, tt := range tests {
		l := New(tt.pct, 10, 100)
		if got := l.Byte(); got != tt.want {
			t.Fatalf("pct=%d byte=%d want %d", tt.pct, got, tt.want)
		}
	}
}

func TestNewClampsInitial(t *testing.T) {
	if got := New(150, 10, 100).Percent(); got != 100 {
		t.Fatalf("pct=%d", got)
	}
	if got := New(-5, 10, 100).Percent(); got != 0 {
		t.Fatalf("pct=%d", got)
	}
}
