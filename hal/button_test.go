package hal

import "testing"

func TestButtonTrackerEdges(t *testing.T) {
	b := NewButtonTracker(500)

	b.Update(0, false)
	if b.WasPressed() || b.WasHeld() {
		t.Fatal("edge while idle")
	}

	b.Update(10, true)
	if !b.WasPressed() {
		t.Fatal("missing press edge")
	}
	if b.WasHeld() {
		t.Fatal("hold reported on press")
	}

	b.Update(20, true)
	if b.WasPressed() {
		t.Fatal("press edge repeated")
	}

	b.Update(510, true)
	if !b.WasHeld() {
		t.Fatal("missing hold edge")
	}
	b.Update(900, true)
	if b.WasHeld() {
		t.Fatal("hold edge repeated")
	}

	b.Update(1000, false)
	b.Update(1010, true)
	if !b.WasPressed() {
		t.Fatal("missing second press edge")
	}
}
