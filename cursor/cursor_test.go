package cursor

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadByteAndBytes(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03, 0x04})

	b, err := c.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x01), b)

	rest, err := c.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x03, 0x04}, rest)
	require.Equal(t, 0, c.Remaining())
}

func TestReadByteOutOfRange(t *testing.T) {
	c := New([]byte{})
	_, err := c.ReadByte()
	require.Error(t, err)
}

func TestReadBytesOutOfRange(t *testing.T) {
	c := New([]byte{0x01})
	_, err := c.ReadBytes(5)
	require.Error(t, err)
}

func TestReadInt32BE(t *testing.T) {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, 0x01020304)
	c := New(buf)

	v, err := c.ReadInt32BE()
	require.NoError(t, err)
	require.Equal(t, int32(0x01020304), v)
}

func TestReadUvarintSingleByte(t *testing.T) {
	c := New([]byte{0x05})
	v, err := c.ReadUvarint()
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)
	require.Equal(t, 1, c.Pos())
}

func TestReadUvarintMultiByte(t *testing.T) {
	buf := binary.AppendUvarint(nil, 300)
	c := New(buf)
	v, err := c.ReadUvarint()
	require.NoError(t, err)
	require.Equal(t, uint64(300), v)
	require.Equal(t, len(buf), c.Pos())
}

func TestReadUvarintTruncated(t *testing.T) {
	c := New([]byte{0x80, 0x80})
	_, err := c.ReadUvarint()
	require.Error(t, err)
}

func TestZigZag32RoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 2, -2, 2147483647, -2147483648}
	for _, v := range cases {
		require.Equal(t, v, ZigZagDecode32(ZigZagEncode32(v)))
	}
}

func TestZigZag64RoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 300, -300, 9223372036854775807, -9223372036854775808}
	for _, v := range cases {
		require.Equal(t, v, ZigZagDecode64(ZigZagEncode64(v)))
	}
}

func TestReadVarintSigned(t *testing.T) {
	buf := binary.AppendUvarint(nil, ZigZagEncode64(-5))
	c := New(buf)
	v, err := c.ReadVarint()
	require.NoError(t, err)
	require.Equal(t, int64(-5), v)
}

func TestSetAndAdvance(t *testing.T) {
	c := New([]byte{1, 2, 3, 4, 5})
	c.Advance(2)
	require.Equal(t, 2, c.Pos())
	c.Set(0)
	require.Equal(t, 0, c.Pos())
}
