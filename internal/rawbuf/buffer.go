// Package rawbuf implements an append-only byte arena with amortised
// doubling growth and random-access mutable windows into already-written
// bytes. It backs the SSA instruction stream in package ssa: Buffer never
// shrinks or reorders bytes, so offsets handed out by Append remain valid
// for the lifetime of the Buffer, which is exactly what forward-reference
// patch points need.
package rawbuf

// minCapacity is the smallest backing array rawbuf ever allocates, even for
// a Buffer whose first Append call asks for fewer bytes.
const minCapacity = 1024

// Buffer is a growable, append-only byte store. The zero value is not
// usable; construct one with New.
type Buffer struct {
	data []byte
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{data: make([]byte, 0, minCapacity)}
}

// NewSized returns an empty Buffer whose backing array holds at least
// capacity bytes without needing to grow, or minCapacity bytes, whichever is
// larger.
func NewSized(capacity int) *Buffer {
	if capacity < minCapacity {
		capacity = minCapacity
	}
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Append grows the buffer by n zero-initialised bytes and returns a window
// aliasing them. Writes through the returned slice are writes into the
// buffer: the caller is expected to fill the window immediately, as
// ssa.Builder does for every instruction record.
func (b *Buffer) Append(n int) []byte {
	start := len(b.data)
	b.data = append(b.data, make([]byte, n)...)
	return b.data[start : start+n : start+n]
}

// GetSliceMut returns a mutable window over n already-written bytes
// starting at offset. It panics if the window falls outside the bytes
// written so far. This is the mechanism patch points use to rewrite a
// forward-reference label field in place.
func (b *Buffer) GetSliceMut(offset, n int) []byte {
	if offset < 0 || n < 0 || offset+n > len(b.data) {
		panic("rawbuf: GetSliceMut out of range")
	}
	return b.data[offset : offset+n : offset+n]
}

// View returns a read-only view of every byte written so far. The returned
// slice aliases the buffer's backing array and is invalidated by any
// subsequent call to Append that triggers a reallocation; callers that need
// a stable copy should clone it.
func (b *Buffer) View() []byte {
	return b.data
}
