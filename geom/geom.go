// Package geom holds the decoded data model a tile's geometry column is
// built from: the point/coordinates shapes geometries are expressed in,
// the topology offset arrays that partition a vertex buffer into features,
// parts, and rings, and the vertex buffer itself (direct or
// dictionary/Morton indirected).
package geom

import "github.com/maplibre/mlt-go/format"

// Point is a 2-D integer coordinate pair.
type Point struct {
	X, Y int32
}

// Ring is an ordered sequence of points. For POLYGON/MULTIPOLYGON rings the
// first and last point are equal (closed).
type Ring []Point

// Coordinates is the MLT coordinate-array shape: an ordered list of rings.
//
//   - POINT:            [[p]]
//   - MULTIPOINT:       [[p1],[p2],...]
//   - LINESTRING:       [[p1,...,pn]]
//   - MULTILINESTRING:  [[...],[...]]
//   - POLYGON:          [shell, hole1, hole2, ...] rings closed
//   - MULTIPOLYGON:     flat concatenation of all rings in feature order
type Coordinates []Ring

// Topology holds the (up to) three monotonically non-decreasing offset
// arrays a geometry column's vertex buffer is partitioned by.
type Topology struct {
	// GeometryOffsets partitions features into (multi-)geometries; present
	// only for mixed-type vectors, where it counts parts rather than
	// vertices.
	GeometryOffsets []int32

	// PartOffsets partitions rings/linestrings per feature.
	PartOffsets []int32

	// RingOffsets partitions vertices per ring.
	RingOffsets []int32
}

// HasGeometryOffsets reports whether this is a mixed-type vector.
func (t Topology) HasGeometryOffsets() bool { return len(t.GeometryOffsets) > 0 }

// HasPartOffsets reports whether part-level offsets are present.
func (t Topology) HasPartOffsets() bool { return len(t.PartOffsets) > 0 }

// HasRingOffsets reports whether ring-level offsets are present.
func (t Topology) HasRingOffsets() bool { return len(t.RingOffsets) > 0 }

// MortonSettings carries the bit budget used to decode a Morton-indirected
// vertex buffer; see package morton.
type MortonSettings struct {
	NumBits         int
	CoordinateShift int
}

// VertexBuffer is the interleaved x,y int32 pair stream (or Morton code
// stream) a geometry column's coordinates are drawn from, optionally
// indirected through a dictionary of vertex indices.
type VertexBuffer struct {
	// Values holds interleaved x0,y0,x1,y1,... pairs, or, when Type is
	// DictionaryMorton, one Z-order code per logical vertex.
	Values []int32

	Type format.DictionaryType

	// Offsets indirects vertex lookups through a dictionary: Offsets[i] is
	// the logical vertex index into Values for vertex slot i. Empty when
	// the buffer is accessed directly.
	Offsets []int32

	Morton MortonSettings
}

// NumVertices returns the number of logical (x,y) vertices the buffer
// exposes, accounting for dictionary indirection.
func (vb VertexBuffer) NumVertices() int {
	if len(vb.Offsets) > 0 {
		return len(vb.Offsets)
	}
	if vb.Type == format.DictionaryMorton {
		return len(vb.Values)
	}
	return len(vb.Values) / 2
}
