package overlay

import "dial/face/gfx"

// Allocator returns a slice of exactly n pixels, or nil when it cannot.
type Allocator func(n int) []gfx.Color

// HeapAllocator allocates from the Go heap.
func HeapAllocator(n int) []gfx.Color { return make([]gfx.Color, n) }

// Limit wraps a with a ceiling on the snapshot size. max <= 0 means no limit.
func Limit(max int, a Allocator) Allocator {
	if max <= 0 {
		return a
	}
	return func(n int) []gfx.Color {
		if n > max {
			return nil
		}
		return a(n)
	}
}

// Buffer is background snapshot storage. Its capacity only grows: a request
// that fits reuses the existing slice, one that does not reallocates to
// exactly the requested size.
type Buffer struct {
	alloc  Allocator
	pix    []gfx.Color
	n      int
	allocs int
}

// NewBuffer returns an empty buffer. A nil alloc uses the heap.
func NewBuffer(alloc Allocator) *Buffer {
	if alloc == nil {
		alloc = HeapAllocator
	}
	return &Buffer{alloc: alloc}
}

// Reserve makes room for n pixels and sets the logical length. It reports
// false when the allocator failed; the buffer is then empty.
func (b *Buffer) Reserve(n int) bool {
	if n > len(b.pix) {
		b.allocs++
		b.pix = b.alloc(n)
		if len(b.pix) < n {
			b.pix = nil
			b.n = 0
			return false
		}
	}
	b.n = n
	return true
}

// Pixels returns the logical contents.
func (b *Buffer) Pixels() []gfx.Color { return b.pix[:b.n] }

// Len is the logical size in pixels.
func (b *Buffer) Len() int { return b.n }

// Cap is the allocated size in pixels.
func (b *Buffer) Cap() int { return len(b.pix) }

// Allocs counts allocation attempts over the buffer's life.
func (b *Buffer) Allocs() int { return b.allocs }

// Release drops the storage.
func (b *Buffer) Release() {
	b.pix = nil
	b.n = 0
}
