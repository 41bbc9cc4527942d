//go:build !linux && !tinygo

package hal

import "errors"

type evdevInput struct{}

func openEvdev(in *hostInput, paths []string, width, height int, grab bool) (*evdevInput, error) {
	return nil, errors.New("evdev input is only available on Linux")
}

func (e *evdevInput) Close() error { return nil }
