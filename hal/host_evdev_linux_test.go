//go:build linux && !tinygo

package hal

import (
	"encoding/binary"
	"image"
	"testing"
)

func encodeEvents(sz int, evs ...[3]int) []byte {
	b := make([]byte, 0, sz*len(evs))
	for _, ev := range evs {
		rec := make([]byte, sz)
		off := sz - 8
		binary.LittleEndian.PutUint16(rec[off:], uint16(ev[0]))
		binary.LittleEndian.PutUint16(rec[off+2:], uint16(ev[1]))
		binary.LittleEndian.PutUint32(rec[off+4:], uint32(int32(ev[2])))
		b = append(b, rec...)
	}
	return b
}

func TestParseInputEventsKeepsPartialRecord(t *testing.T) {
	for _, sz := range []int{16, 24} {
		b := encodeEvents(sz, [3]int{evRel, relDial, -2}, [3]int{evSyn, synReport, 0})
		b = append(b, make([]byte, sz/2)...)
		var got [][3]int
		used := parseInputEvents(b, sz, func(typ, code uint16, v int32) {
			got = append(got, [3]int{int(typ), int(code), int(v)})
		})
		if used != 2*sz {
			t.Fatalf("sz=%d used=%d", sz, used)
		}
		if len(got) != 2 || got[0] != [3]int{evRel, relDial, -2} {
			t.Fatalf("sz=%d events=%v", sz, got)
		}
	}
}

func TestEvdevDeviceFoldsAtSyn(t *testing.T) {
	in := &hostInput{}
	d := &evdevDevice{
		src: srcEvdev,
		in:  in,
		ax:  axis{min: 0, max: 1000, size: 241},
		ay:  axis{min: 0, max: 1000, size: 241},
	}
	feed := func(evs ...[3]int) {
		parseInputEvents(encodeEvents(inputEventSize, evs...), inputEventSize, d.handle)
	}

	feed([3]int{evRel, relWheel, 3}, [3]int{evRel, relDial, -1})
	if got := in.PollAndResetDelta(); got != 0 {
		t.Fatalf("delta before syn=%d", got)
	}
	feed([3]int{evSyn, synReport, 0})
	if got := in.PollAndResetDelta(); got != 2 {
		t.Fatalf("delta=%d want 2", got)
	}

	feed(
		[3]int{evAbs, absMTSlot, 0},
		[3]int{evAbs, absMTTrackingID, 7},
		[3]int{evAbs, absMTPositionX, 500},
		[3]int{evAbs, absMTPositionY, 250},
		[3]int{evSyn, synReport, 0},
	)
	if in.ContactCount() != 1 || in.Contact(0) != image.Pt(120, 60) {
		t.Fatalf("contact count=%d pos=%v", in.ContactCount(), in.Contact(0))
	}

	// A second finger on another slot does not move the first.
	feed(
		[3]int{evAbs, absMTSlot, 1},
		[3]int{evAbs, absMTPositionX, 0},
		[3]int{evSyn, synReport, 0},
	)
	if in.Contact(0) != image.Pt(120, 60) {
		t.Fatalf("pos=%v", in.Contact(0))
	}

	feed(
		[3]int{evAbs, absMTSlot, 0},
		[3]int{evAbs, absMTTrackingID, -1},
		[3]int{evSyn, synReport, 0},
	)
	if in.ContactCount() != 0 {
		t.Fatal("contact still reported after lift")
	}

	feed([3]int{evKey, keyEnter, 1})
	if !in.buttonDown() {
		t.Fatal("enter not seen as button")
	}
	feed([3]int{evKey, keyEnter, 0})
	if in.buttonDown() {
		t.Fatal("button stuck")
	}
}

func TestAxisScaleClamps(t *testing.T) {
	a := axis{min: 100, max: 200, size: 11}
	tests := []struct {
		v    int32
		want int
	}{
		{50, 0},
		{100, 0},
		{150, 5},
		{200, 10},
		{900, 10},
	}
	for _, tt := range tests {
		if got := a.scale(tt.v); got != tt.want {
			t.Fatalf("scale(%d)=%d want %d", tt.v, got, tt.want)
		}
	}
}
