package fastpfor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maplibre/mlt-go/cursor"
)

func TestRoundTripSmallSequence(t *testing.T) {
	values := []int32{0, 1, 2, 3, 5, 8, 13, 21}

	encoded := Encode(values)
	decoded, err := Decode(cursor.New(encoded), len(values), nil)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestRoundTripLengthNotBlockAligned(t *testing.T) {
	values := make([]int32, 259)
	for i := range values {
		values[i] = int32(i) * 7
	}

	encoded := Encode(values)
	decoded, err := Decode(cursor.New(encoded), len(values), nil)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestRoundTripMultiPage(t *testing.T) {
	n := DefaultPageSize + BlockSize*3
	values := make([]int32, n)
	for i := range values {
		values[i] = int32(i % 4096)
	}

	encoded := Encode(values)
	decoded, err := Decode(cursor.New(encoded), len(values), nil)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestRoundTripAllZero(t *testing.T) {
	values := make([]int32, BlockSize*2)
	encoded := Encode(values)
	decoded, err := Decode(cursor.New(encoded), len(values), nil)
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestDecodeExceptionPatch(t *testing.T) {
	// Hand-built single page, single block of BlockSize values: bitWidth=2
	// covers {0,1,2,3}, one value (13, needing 4 bits) is patched as an exception.
	blockValues := make([]int32, BlockSize)
	blockValues[0] = 0
	blockValues[1] = 1
	blockValues[3] = 2

	const bitWidth = 2
	const exceptPos = 2
	const trueValue = int32(0b1101) // 13: low 2 bits = 01, high bits (maxBits-bitWidth=2 bits) = 0b11 = 3
	blockValues[exceptPos] = trueValue & ((1 << bitWidth) - 1)

	body := packBlock(blockValues, bitWidth)

	byteContainer := []byte{byte(bitWidth), 1, 4 /*maxBits*/, byte(exceptPos)}
	// pad byteContainer to 4-byte alignment
	for len(byteContainer)%4 != 0 {
		byteContainer = append(byteContainer, 0)
	}

	buf := make([]byte, 0, 256)
	// aligned count
	header := make([]byte, 4)
	putBE32(header, BlockSize)
	buf = append(buf, header...)

	// page: headerSize, body
	headerSize := make([]byte, 4)
	putBE32(headerSize, int32(4+len(body)))
	buf = append(buf, headerSize...)
	buf = append(buf, body...)

	byteSize := make([]byte, 4)
	putBE32(byteSize, int32(4)) // unpadded byteContainer logical length
	buf = append(buf, byteSize...)
	buf = append(buf, byteContainer...)

	// exception bitmap: width 2 present (bit index 0)
	exceptVal := trueValue >> bitWidth // high bits only, 2 bits wide
	excBody := packBlock([]int32{exceptVal}, 2)

	bitmap := make([]byte, 4)
	putBE32(bitmap, 1<<0)
	buf = append(buf, bitmap...)

	lenBuf := make([]byte, 4)
	putBE32(lenBuf, 1)
	buf = append(buf, lenBuf...)
	buf = append(buf, excBody...)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}

	decoded, err := Decode(cursor.New(buf), BlockSize, nil)
	require.NoError(t, err)
	require.Equal(t, trueValue, decoded[exceptPos])
	require.Equal(t, int32(0), decoded[0])
	require.Equal(t, int32(1), decoded[1])
	require.Equal(t, int32(2), decoded[3])
}

func TestDecodeMalformedTruncated(t *testing.T) {
	_, err := Decode(cursor.New([]byte{0x00}), 10, nil)
	require.Error(t, err)
}
