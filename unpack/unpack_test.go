package unpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// pack is a test-only reference packer mirroring the accumulator convention
// Unpack expects, used to build round-trip fixtures.
func pack(values []int32, bitWidth int) []byte {
	out := make([]byte, BytesFor(len(values), bitWidth))
	var acc uint64
	var bitsInAcc int
	outIdx := 0
	mask := uint64(1)<<uint(bitWidth) - 1

	flush := func() {
		for bitsInAcc >= 32 {
			out[outIdx] = byte(acc)
			out[outIdx+1] = byte(acc >> 8)
			out[outIdx+2] = byte(acc >> 16)
			out[outIdx+3] = byte(acc >> 24)
			outIdx += 4
			acc >>= 32
			bitsInAcc -= 32
		}
	}

	for _, v := range values {
		acc |= (uint64(uint32(v)) & mask) << bitsInAcc
		bitsInAcc += bitWidth
		flush()
	}
	if bitsInAcc > 0 {
		out[outIdx] = byte(acc)
		out[outIdx+1] = byte(acc >> 8)
		out[outIdx+2] = byte(acc >> 16)
		out[outIdx+3] = byte(acc >> 24)
	}
	return out
}

func TestUnpackRoundTrip(t *testing.T) {
	for _, bitWidth := range []int{1, 2, 3, 5, 7, 8, 12, 16, 17, 31, 32} {
		max := int32(1)
		if bitWidth < 32 {
			max = int32(1)<<uint(bitWidth) - 1
		} else {
			max = 1<<31 - 1
		}

		values := make([]int32, 32)
		for i := range values {
			values[i] = int32(i) % (max + 1)
		}

		buf := pack(values, bitWidth)
		out := make([]int32, 32)
		Unpack(out, buf, 32, bitWidth)

		require.Equal(t, values, out, "bitWidth=%d", bitWidth)
	}
}

func TestUnpackZeroWidth(t *testing.T) {
	out := make([]int32, 10)
	for i := range out {
		out[i] = 99
	}
	Unpack(out, nil, 10, 0)
	for _, v := range out {
		require.Equal(t, int32(0), v)
	}
}

func TestUnpack32MatchesGeneric(t *testing.T) {
	values := make([]int32, 32)
	for i := range values {
		values[i] = int32(i % 16)
	}
	buf := pack(values, 4)

	a := make([]int32, 32)
	Unpack(a, buf, 32, 4)

	b := make([]int32, 32)
	Unpack32(b, buf, 4)

	require.Equal(t, a, b)
}

func TestUnpack256MatchesGeneric(t *testing.T) {
	values := make([]int32, BlockValues)
	for i := range values {
		values[i] = int32(i % 8)
	}
	buf := pack(values, 3)

	a := make([]int32, BlockValues)
	Unpack(a, buf, BlockValues, 3)

	b := make([]int32, BlockValues)
	Unpack256(b, buf, 3)

	require.Equal(t, a, b)
}

func TestWordsForAndBytesFor(t *testing.T) {
	require.Equal(t, 1, WordsFor(32, 1))
	require.Equal(t, 8, WordsFor(32, 8))
	require.Equal(t, 64, WordsFor(256, 8))
	require.Equal(t, 256, BytesFor(256, 8))
}
