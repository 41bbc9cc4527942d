package deadline

import "testing"

func TestDueAcrossWrap(t *testing.T) {
	var tm Timer
	now := uint32(0xFFFF_FFF0)
	tm.Arm(now, 0x20)

	if tm.Due(now) {
		t.Fatal("due immediately after arm")
	}
	if tm.Due(0xFFFF_FFFF) {
		t.Fatal("due before wrap")
	}
	if tm.Due(0x0000_000F) {
		t.Fatal("due one ms early")
	}
	if !tm.Due(0x0000_0010) {
		t.Fatal("not due at deadline after wrap")
	}
	if !tm.Fire(0x0000_0011) {
		t.Fatal("Fire returned false")
	}
	if tm.Armed() || tm.Due(0x0000_0011) {
		t.Fatal("timer still armed after Fire")
	}
}

func TestSinceAcrossWrap(t *testing.T) {
	if got := Since(5, 0xFFFF_FFFB); got != 10 {
		t.Fatalf("Since=%d want 10", got)
	}
}

func TestEvery(t *testing.T) {
	var e Every
	if !e.Tick(100, 1000) {
		t.Fatal("first tick should fire")
	}
	if e.Tick(1099, 1000) {
		t.Fatal("fired early")
	}
	if !e.Tick(1100, 1000) {
		t.Fatal("did not fire after period")
	}
}
