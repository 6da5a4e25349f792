// Package bytecursor provides little-endian fixed-width encode/decode
// helpers with cursor semantics: every Put*/Pop* call advances a position
// forward by the value's width. Package ssa's builder and decoder read and
// write every record field through it (the lazy ValueList view decodes its
// elements with encoding/binary directly).
package bytecursor

import "encoding/binary"

// Cursor reads sequentially through a byte slice it does not own. Pop*
// methods advance Pos and panic if the remaining bytes are too few. The
// decoder checks each record's length with TryPopU8/TryPopChunk first and
// calls Pop* only on windows already known to be long enough.
type Cursor struct {
	Bytes []byte
	Pos   int
}

// NewCursor returns a Cursor starting at the beginning of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{Bytes: b}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.Bytes) - c.Pos
}

// Exhausted reports whether every byte has been consumed.
func (c *Cursor) Exhausted() bool {
	return c.Remaining() == 0
}

func (c *Cursor) require(n int) {
	if c.Remaining() < n {
		panic("bytecursor: short read")
	}
}

// PopU8 reads one byte and advances the cursor.
func (c *Cursor) PopU8() uint8 {
	c.require(1)
	v := c.Bytes[c.Pos]
	c.Pos++
	return v
}

// PopU32 reads a little-endian uint32 and advances the cursor by 4.
func (c *Cursor) PopU32() uint32 {
	c.require(4)
	v := binary.LittleEndian.Uint32(c.Bytes[c.Pos:])
	c.Pos += 4
	return v
}

// PopU64 reads a little-endian uint64 and advances the cursor by 8.
func (c *Cursor) PopU64() uint64 {
	c.require(8)
	v := binary.LittleEndian.Uint64(c.Bytes[c.Pos:])
	c.Pos += 8
	return v
}

// PopChunk returns an n-byte window aliasing the underlying bytes and
// advances the cursor past it, without interpreting the contents. Used for
// TypeList/ValueList payloads that package ssa decodes lazily.
func (c *Cursor) PopChunk(n int) []byte {
	c.require(n)
	chunk := c.Bytes[c.Pos : c.Pos+n : c.Pos+n]
	c.Pos += n
	return chunk
}

// TryPopU8 is PopU8 without panicking: it reports false if no byte remains,
// leaving the cursor untouched. The decoder uses this for its leading tag
// byte so that end-of-stream is distinguishable from a truncated body.
func (c *Cursor) TryPopU8() (uint8, bool) {
	if c.Exhausted() {
		return 0, false
	}
	return c.PopU8(), true
}

// TryPopChunk is PopChunk without panicking: it reports false if fewer than
// n bytes remain, leaving the cursor untouched. This is the decoder's
// building block for validating a record body before decoding any of its
// fields, the same role original_source/src/ssa.rs's `chomp` plays: pull
// the whole fixed-size (or nargs-sized) window up front, bail out cleanly
// if it is not all there, and only then pick fields out of the
// already-validated window.
func (c *Cursor) TryPopChunk(n int) ([]byte, bool) {
	if c.Remaining() < n {
		return nil, false
	}
	return c.PopChunk(n), true
}

// The Put* functions are the encode side: they operate on a
// caller-owned destination slice (typically a window returned by
// rawbuf.Buffer.Append) rather than on the Cursor's own Bytes, since the
// builder writes forward into fresh buffer space rather than reading.

// PutU8 writes v into dst[0].
func PutU8(dst []byte, v uint8) {
	dst[0] = v
}

// PutU32 writes v into dst[0:4] in little-endian order.
func PutU32(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}

// PutU64 writes v into dst[0:8] in little-endian order.
func PutU64(dst []byte, v uint64) {
	binary.LittleEndian.PutUint64(dst, v)
}

// Iterate calls fn once per non-overlapping n-byte chunk of b, in order. It
// panics if len(b) is not a multiple of n, matching the builder's guarantee
// that TypeList/ValueList payloads are always whole multiples of their
// element width.
func Iterate(b []byte, n int, fn func(chunk []byte)) {
	if len(b)%n != 0 {
		panic("bytecursor: Iterate: length not a multiple of chunk size")
	}
	for off := 0; off < len(b); off += n {
		fn(b[off : off+n])
	}
}
