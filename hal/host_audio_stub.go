//go:build !tinygo && !cgo

package hal

// newHostAudio has no backend without cgo.
func newHostAudio() Speaker { return nil }
