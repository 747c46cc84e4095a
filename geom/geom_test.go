package geom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/format"
)

func TestVertexBufferDirect(t *testing.T) {
	vb := VertexBuffer{Values: []int32{100, 0, 110, 0, 110, 10}}
	require.Equal(t, 3, vb.NumVertices())

	p0, err := vb.At(0)
	require.NoError(t, err)
	require.Equal(t, Point{100, 0}, p0)

	p2, err := vb.At(2)
	require.NoError(t, err)
	require.Equal(t, Point{110, 10}, p2)
}

func TestVertexBufferDictionaryIndirected(t *testing.T) {
	vb := VertexBuffer{
		Values:  []int32{100, 0, 110, 0, 110, 10},
		Offsets: []int32{2, 0, 1},
	}
	require.Equal(t, 3, vb.NumVertices())

	p0, err := vb.At(0)
	require.NoError(t, err)
	require.Equal(t, Point{110, 10}, p0)

	p1, err := vb.At(1)
	require.NoError(t, err)
	require.Equal(t, Point{100, 0}, p1)

	p2, err := vb.At(2)
	require.NoError(t, err)
	require.Equal(t, Point{110, 0}, p2)
}

func TestVertexBufferMorton(t *testing.T) {
	settings := MortonSettings{NumBits: 32, CoordinateShift: 1 << 10}
	vb := VertexBuffer{
		Type:   format.DictionaryMorton,
		Morton: settings,
	}

	want := Point{X: 42, Y: -7}
	code := encodeForTest(want.X, want.Y, settings)
	vb.Values = []int32{code}

	got, err := vb.At(0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestVertexBufferMortonMissingSettings(t *testing.T) {
	vb := VertexBuffer{
		Type:   format.DictionaryMorton,
		Values: []int32{42},
	}

	_, err := vb.At(0)
	require.ErrorIs(t, err, errs.ErrMissingParameter)
}

func TestTopologyHasFlags(t *testing.T) {
	var t1 Topology
	require.False(t, t1.HasGeometryOffsets())
	require.False(t, t1.HasPartOffsets())
	require.False(t, t1.HasRingOffsets())

	t2 := Topology{GeometryOffsets: []int32{0, 1}, PartOffsets: []int32{0, 1}, RingOffsets: []int32{0, 4}}
	require.True(t, t2.HasGeometryOffsets())
	require.True(t, t2.HasPartOffsets())
	require.True(t, t2.HasRingOffsets())
}

func encodeForTest(x, y int32, s MortonSettings) int32 {
	ux := uint32(x + int32(s.CoordinateShift))
	uy := uint32(y + int32(s.CoordinateShift))
	bitsPerAxis := s.NumBits / 2
	var code uint32
	for i := 0; i < bitsPerAxis; i++ {
		code |= ((ux >> uint(i)) & 1) << uint(2*i)
		code |= ((uy >> uint(i)) & 1) << uint(2*i+1)
	}
	return int32(code)
}
