// Package unpack implements the fixed-width integer unpackers used by the
// FastPFOR physical layer: a generic routine handling any bit width 1..32,
// plus Unpack32/Unpack256 entry points sized to a 32-value lane and to
// FastPFOR's 256-value block. The named entry points are a transparent
// optimization over the generic routine; their output is identical for the
// same (input, bitWidth).
package unpack

import "github.com/maplibre/mlt-go/endian"

var littleEndian = endian.GetLittleEndianEngine()

// BlockValues is the number of values a single FastPFOR block packs.
const BlockValues = 256

// laneValues is the number of values Unpack32 decodes.
const laneValues = 32

// Unpack decodes n values packed at bitWidth bits each from input (a byte
// stream read least-significant-byte first, 4 bytes per accumulator word),
// writing results into out. It tracks a running bit offset across a 64-bit
// accumulator, pulling in one more input word whenever fewer than bitWidth
// bits remain buffered.
//
// Invariant: unpacking n values at bitWidth bits consumes exactly
// ceil(n*bitWidth/32) input words (4 bytes each).
func Unpack(out []int32, input []byte, n, bitWidth int) {
	if bitWidth == 0 {
		for i := 0; i < n; i++ {
			out[i] = 0
		}
		return
	}

	mask := uint64(1)<<uint(bitWidth) - 1

	var acc uint64
	var bitsInAcc int
	inIdx := 0

	for i := 0; i < n; i++ {
		for bitsInAcc < bitWidth {
			var word uint32
			if inIdx+4 <= len(input) {
				word = littleEndian.Uint32(input[inIdx : inIdx+4])
			}
			acc |= uint64(word) << bitsInAcc
			inIdx += 4
			bitsInAcc += 32
		}
		out[i] = int32(acc & mask) //nolint:gosec
		acc >>= uint(bitWidth)
		bitsInAcc -= bitWidth
	}
}

// Unpack32 decodes 32 values from bitWidth input words. It is the routine
// FastPFOR's generated fast paths (bit widths 1..12 and 16) specialize;
// behavior is identical to Unpack for n=32.
func Unpack32(out []int32, input []byte, bitWidth int) {
	Unpack(out[:laneValues], input, laneValues, bitWidth)
}

// Unpack256 decodes 256 values from 8*bitWidth input words — one FastPFOR
// block body.
func Unpack256(out []int32, input []byte, bitWidth int) {
	Unpack(out[:BlockValues], input, BlockValues, bitWidth)
}

// WordsFor returns the number of 4-byte input words that unpacking n values
// at bitWidth bits consumes.
func WordsFor(n, bitWidth int) int {
	bits := n * bitWidth
	return (bits + 31) / 32
}

// BytesFor returns the number of input bytes that unpacking n values at
// bitWidth bits consumes.
func BytesFor(n, bitWidth int) int {
	return WordsFor(n, bitWidth) * 4
}
