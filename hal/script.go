//go:build !tinygo

package hal

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v3"

	"dial/deadline"
)

// Script is a timed sequence of input actions replayed by the headless runner.
//
//	steps:
//	  - at: 0
//	    touch: [120, 120]
//	  - at: 150
//	    release: true
//	  - at: 300
//	    rotate: 8
//	  - at: 400
//	    button: true
type Script struct {
	Steps []ScriptStep `yaml:"steps"`

	idx     int
	start   uint32
	started bool
}

// ScriptStep is one action, At milliseconds after the first tick. A step may
// combine several actions.
type ScriptStep struct {
	At      uint32 `yaml:"at"`
	Touch   []int  `yaml:"touch,omitempty"`
	Release bool   `yaml:"release,omitempty"`
	Rotate  int    `yaml:"rotate,omitempty"`
	Button  *bool  `yaml:"button,omitempty"`
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := ParseScript(b)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes a YAML script.
func ParseScript(b []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	if len(s.Steps) == 0 {
		return errors.New("no steps")
	}
	var prev uint32
	for i, st := range s.Steps {
		if st.At < prev {
			return fmt.Errorf("step %d: at=%d is before previous step (%d)", i, st.At, prev)
		}
		prev = st.At
		if st.Touch != nil && len(st.Touch) != 2 {
			return fmt.Errorf("step %d: touch wants [x, y], got %v", i, st.Touch)
		}
		if st.Touch != nil && st.Release {
			return fmt.Errorf("step %d: touch and release together", i)
		}
	}
	return nil
}

// Finished reports whether every step has been applied.
func (s *Script) Finished() bool { return s.idx >= len(s.Steps) }

// apply performs every step that is due at now.
func (s *Script) apply(in *hostInput, now uint32) {
	if !s.started {
		s.start = now
		s.started = true
	}
	elapsed := deadline.Since(now, s.start)
	for s.idx < len(s.Steps) && elapsed >= s.Steps[s.idx].At {
		st := s.Steps[s.idx]
		if st.Touch != nil {
			in.setTouch(srcScript, true, image.Pt(st.Touch[0], st.Touch[1]))
		}
		if st.Release {
			in.setTouch(srcScript, false, image.Point{})
		}
		if st.Rotate != 0 {
			in.addTicks(st.Rotate)
		}
		if st.Button != nil {
			in.setButton(srcScript, *st.Button)
		}
		s.idx++
	}
}
