package fastpfor

import (
	"math/bits"

	"github.com/maplibre/mlt-go/internal/pool"
	"github.com/maplibre/mlt-go/unpack"
)

func putBE32(dst []byte, v int32) {
	bigEndian.PutUint32(dst, uint32(v)) //nolint:gosec
}

func putLE32(dst []byte, v uint32) {
	littleEndian.PutUint32(dst, v)
}

// Encode serializes values in the wire format Decode expects. It never
// produces exception patches: each block's bit width is chosen as the exact
// width required by its largest value, so every value fits in the block
// body. This keeps the reference encoder simple; it exists only to produce
// fixtures for round-trip tests, not as a production compressor.
func Encode(values []int32) []byte {
	buf := pool.GetTileBuffer()
	defer pool.PutTileBuffer(buf)

	aligned := (len(values) / BlockSize) * BlockSize

	header := make([]byte, 4)
	putBE32(header, int32(aligned)) //nolint:gosec
	buf.MustWrite(header)

	for consumed := 0; consumed < aligned; {
		pageLen := DefaultPageSize
		if remaining := aligned - consumed; remaining < pageLen {
			pageLen = remaining
		}
		encodePage(buf, values[consumed:consumed+pageLen])
		consumed += pageLen
	}

	if aligned < len(values) {
		encodeVByteTail(buf, values[aligned:])
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

func encodePage(buf *pool.ByteBuffer, values []int32) {
	numBlocks := (len(values) + BlockSize - 1) / BlockSize

	body := make([]byte, 0, len(values)*4)
	byteContainer := make([]byte, 0, numBlocks*2)

	for block := 0; block < numBlocks; block++ {
		start := block * BlockSize
		end := start + BlockSize
		if end > len(values) {
			end = len(values)
		}
		blockValues := values[start:end]

		bitWidth := bitWidthFor(blockValues)
		body = append(body, packBlock(blockValues, bitWidth)...)
		byteContainer = append(byteContainer, byte(bitWidth), 0)
	}

	headerSize := make([]byte, 4)
	putBE32(headerSize, int32(4+len(body))) //nolint:gosec
	buf.MustWrite(headerSize)
	buf.MustWrite(body)

	byteSize := make([]byte, 4)
	putBE32(byteSize, int32(len(byteContainer))) //nolint:gosec
	buf.MustWrite(byteSize)
	buf.MustWrite(byteContainer)
	if pad := align4(len(byteContainer)) - len(byteContainer); pad > 0 {
		buf.MustWrite(make([]byte, pad))
	}

	bitmap := make([]byte, 4) // no exception streams present
	buf.MustWrite(bitmap)
}

func bitWidthFor(values []int32) int {
	max := uint32(0)
	for _, v := range values {
		u := uint32(v) //nolint:gosec
		if u > max {
			max = u
		}
	}
	return bits.Len32(max)
}

func packBlock(values []int32, bitWidth int) []byte {
	out := make([]byte, unpack.BytesFor(len(values), bitWidth))
	if bitWidth == 0 {
		return out
	}

	var acc uint64
	var bitsInAcc int
	outIdx := 0
	mask := uint64(1)<<uint(bitWidth) - 1

	for _, v := range values {
		acc |= (uint64(uint32(v)) & mask) << bitsInAcc //nolint:gosec
		bitsInAcc += bitWidth
		for bitsInAcc >= 32 {
			putLE32(out[outIdx:], uint32(acc))
			outIdx += 4
			acc >>= 32
			bitsInAcc -= 32
		}
	}
	if bitsInAcc > 0 {
		putLE32(out[outIdx:], uint32(acc))
	}

	return out
}

func encodeVByteTail(buf *pool.ByteBuffer, values []int32) {
	for _, v := range values {
		u := uint32(v) //nolint:gosec
		for {
			b := byte(u & 0x7f)
			u >>= 7
			if u == 0 {
				buf.MustWrite([]byte{b | 0x80})
				break
			}
			buf.MustWrite([]byte{b})
		}
	}
}
