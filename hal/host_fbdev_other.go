//go:build !linux && !tinygo

package hal

import "errors"

type fbdevOutput struct{}

func openFbdev(path string, disp *MemDisplay) (*fbdevOutput, error) {
	return nil, errors.New("fbdev output is only available on Linux")
}

func (o *fbdevOutput) Close() error { return nil }
