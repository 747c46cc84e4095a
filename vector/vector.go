// Package vector reconstructs full geometries (coordinates) from a decoded
// geometry column's topology and vertex buffer: Bulk converts every
// feature in one pass (C6), Single extracts exactly one feature's
// coordinates without decoding the rest (C7). Both share the same
// offset-range traversal so that Single(v, i) == Bulk(v)[i] for every
// valid index.
package vector

import (
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/format"
	"github.com/maplibre/mlt-go/geom"
)

// GeometryVector is a fully decoded geometry column: per-feature kinds, the
// topology offset arrays, and the vertex buffer they index into.
type GeometryVector struct {
	Types    []format.GeometryType // one per feature
	Topology geom.Topology
	Vertices geom.VertexBuffer

	NumGeometries int
}

// GeometryType returns the i'th feature's geometry kind without touching
// the vertex buffer.
func (v GeometryVector) GeometryType(i int) (format.GeometryType, error) {
	if i < 0 || i >= len(v.Types) {
		return 0, errs.OutOfRange(i, len(v.Types))
	}
	return v.Types[i], nil
}

// Bulk reconstructs coordinates for every feature in one pass.
func Bulk(v GeometryVector) ([]geom.Coordinates, error) {
	out := make([]geom.Coordinates, v.NumGeometries)
	for i := 0; i < v.NumGeometries; i++ {
		c, err := Single(v, i)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Single reconstructs the coordinates for exactly one feature.
//
//   - 0 <= index < NumGeometries, else ErrOutOfRange.
//   - POLYGON/MULTIPOLYGON rings are closed (first point repeated as last).
//   - MULTIPOINT produces one singleton-point ring per point, not a single
//     multi-point ring.
func Single(v GeometryVector, index int) (geom.Coordinates, error) {
	if index < 0 || index >= v.NumGeometries {
		return nil, errs.OutOfRange(index, v.NumGeometries)
	}

	kind, err := v.GeometryType(index)
	if err != nil {
		return nil, err
	}
	if kind > format.GeometryMultiPolygon {
		return nil, errs.UnsupportedGeometry(int(kind))
	}

	partStart, partEnd := rangeFrom(v.Topology.GeometryOffsets, index)

	var rings []geom.Ring
	for part := partStart; part < partEnd; part++ {
		switch {
		case kind.IsPolygonal():
			ringStart, ringEnd := rangeFrom(v.Topology.PartOffsets, part)
			for r := ringStart; r < ringEnd; r++ {
				vStart, vEnd := rangeFrom(v.Topology.RingOffsets, r)
				ring, err := buildRing(v.Vertices, vStart, vEnd, true)
				if err != nil {
					return nil, err
				}
				rings = append(rings, ring)
			}

		case kind == format.GeometryMultiPoint:
			vStart, vEnd := rangeFrom(v.Topology.PartOffsets, part)
			for vi := vStart; vi < vEnd; vi++ {
				p, err := v.Vertices.At(vi)
				if err != nil {
					return nil, err
				}
				rings = append(rings, geom.Ring{p})
			}

		default: // POINT, LINESTRING, MULTILINESTRING
			vStart, vEnd := rangeFrom(v.Topology.PartOffsets, part)
			ring, err := buildRing(v.Vertices, vStart, vEnd, false)
			if err != nil {
				return nil, err
			}
			rings = append(rings, ring)
		}
	}

	return geom.Coordinates(rings), nil
}

// buildRing reads vertices [start,end) and, when closeIt is true, appends a
// final point equal to the first to close the ring.
func buildRing(vb geom.VertexBuffer, start, end int, closeIt bool) (geom.Ring, error) {
	if end <= start {
		return geom.Ring{}, nil
	}

	ring := make(geom.Ring, 0, end-start+1)
	for vi := start; vi < end; vi++ {
		p, err := vb.At(vi)
		if err != nil {
			return nil, err
		}
		ring = append(ring, p)
	}
	if closeIt && len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring, nil
}

// rangeFrom returns offsets[idx], offsets[idx+1] when offsets is present,
// or the identity range [idx, idx+1) when it is omitted ("one unit per
// feature" for single-type vectors).
func rangeFrom(offsets []int32, idx int) (int, int) {
	if len(offsets) == 0 {
		return idx, idx + 1
	}
	return int(offsets[idx]), int(offsets[idx+1])
}
