//go:build !tinygo

package hal

import (
	"image"
	"testing"
)

const testScript = `
steps:
  - at: 0
    touch: [100, 100]
  - at: 150
    release: true
  - at: 150
    rotate: 8
  - at: 300
    button: true
`

func TestParseScriptAndApply(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	in := &hostInput{}

	s.apply(in, 1000)
	if in.ContactCount() != 1 || in.Contact(0) != image.Pt(100, 100) {
		t.Fatalf("contact=%d %v", in.ContactCount(), in.Contact(0))
	}

	s.apply(in, 1149)
	if in.ContactCount() != 1 {
		t.Fatal("released early")
	}

	s.apply(in, 1150)
	if in.ContactCount() != 0 {
		t.Fatal("not released")
	}
	if d := in.PollAndResetDelta(); d != 8 {
		t.Fatalf("delta=%d want 8", d)
	}
	if s.Finished() {
		t.Fatal("finished before last step")
	}

	s.apply(in, 1300)
	if !in.buttonDown() || !s.Finished() {
		t.Fatalf("button=%v finished=%v", in.buttonDown(), s.Finished())
	}
}

func TestParseScriptRejects(t *testing.T) {
	tests := map[string]string{
		"empty":     "steps: []",
		"unordered": "steps:\n  - at: 10\n    rotate: 1\n  - at: 5\n    rotate: 1\n",
		"badtouch":  "steps:\n  - at: 0\n    touch: [1]\n",
		"unknown":   "steps:\n  - at: 0\n    swipe: true\n",
	}
	for name, src := range tests {
		if _, err := ParseScript([]byte(src)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
