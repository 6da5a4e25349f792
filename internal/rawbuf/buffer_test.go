package rawbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_AppendGrowsAndZeroes(t *testing.T) {
	b := New()
	require.Equal(t, 0, b.Len())

	w := b.Append(4)
	require.Len(t, w, 4)
	require.Equal(t, []byte{0, 0, 0, 0}, w)
	require.Equal(t, 4, b.Len())

	w[0] = 0xff
	require.Equal(t, byte(0xff), b.View()[0])
}

func TestBuffer_AppendPastInitialCapacityPreservesBytes(t *testing.T) {
	b := New()
	first := b.Append(8)
	for i := range first {
		first[i] = byte(i + 1)
	}

	// Force growth well past the 1024-byte initial capacity.
	b.Append(4096)

	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b.View()[:8])
	require.Equal(t, 4104, b.Len())
}

func TestBuffer_NewSizedHonorsMinimum(t *testing.T) {
	b := NewSized(4)
	require.Equal(t, 0, b.Len())
	require.Equal(t, minCapacity, cap(b.data))
	b.Append(minCapacity + 1)
	require.Equal(t, minCapacity+1, b.Len())
}

func TestBuffer_GetSliceMutAliasesAndPatches(t *testing.T) {
	b := New()
	w := b.Append(8)
	for i := range w {
		w[i] = 0
	}

	patch := b.GetSliceMut(0, 4)
	patch[0], patch[1], patch[2], patch[3] = 1, 2, 3, 4

	require.Equal(t, []byte{1, 2, 3, 4, 0, 0, 0, 0}, b.View())

	// Last write wins: patching twice just overwrites.
	again := b.GetSliceMut(0, 4)
	again[0] = 9
	require.Equal(t, byte(9), b.View()[0])
}

func TestBuffer_GetSliceMutOutOfRangePanics(t *testing.T) {
	b := New()
	b.Append(4)
	require.Panics(t, func() { b.GetSliceMut(2, 4) })
	require.Panics(t, func() { b.GetSliceMut(-1, 1) })
}
