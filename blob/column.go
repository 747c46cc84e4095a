// Package blob holds the tile-level column types built on top of geom and
// vector: a deferred geometry column that decodes lazily (C8), a lazy
// coordinates resolver that picks single-feature vs. bulk decode based on
// observed access patterns (C9), and the feature table / virtual layer
// that exposes decoded features to callers (C10).
package blob

import (
	"github.com/maplibre/mlt-go/cursor"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/fastpfor"
	"github.com/maplibre/mlt-go/format"
	"github.com/maplibre/mlt-go/geom"
	"github.com/maplibre/mlt-go/intstream"
	"github.com/maplibre/mlt-go/streammeta"
	"github.com/maplibre/mlt-go/vector"
)

// DeferredGeometryColumn holds a reference into the raw tile bytes for a
// geometry column whose streams have not yet been decoded, decoding them
// only when first needed. After Get() is called once the result is cached;
// the caller should drop its reference to the deferred column afterward so
// the backing byte range can be freed.
type DeferredGeometryColumn struct {
	raw         []byte
	startOffset int
	streamCount int
	numFeatures int

	geometryTypeVal format.GeometryType
	geometryTypeArr []format.GeometryType
	typeResolved    bool

	cached *vector.GeometryVector
}

// NewDeferredGeometryColumn constructs a deferred column over raw, starting
// decode at startOffset, expecting streamCount integer streams and
// numFeatures features.
func NewDeferredGeometryColumn(raw []byte, startOffset, streamCount, numFeatures int) *DeferredGeometryColumn {
	return &DeferredGeometryColumn{
		raw:         raw,
		startOffset: startOffset,
		streamCount: streamCount,
		numFeatures: numFeatures,
	}
}

// NumFeatures returns the feature count this column covers.
func (d *DeferredGeometryColumn) NumFeatures() int { return d.numFeatures }

// GeometryType returns the i'th feature's geometry kind, decoding only the
// geometry-type stream on first call. Never triggers a full vertex decode.
func (d *DeferredGeometryColumn) GeometryType(i int) (format.GeometryType, error) {
	if i < 0 || i >= d.numFeatures {
		return 0, errs.OutOfRange(i, d.numFeatures)
	}

	if d.cached != nil {
		return d.cached.GeometryType(i)
	}

	if !d.typeResolved {
		if err := d.resolveGeometryType(); err != nil {
			return 0, err
		}
	}

	if d.geometryTypeArr != nil {
		return d.geometryTypeArr[i], nil
	}
	return d.geometryTypeVal, nil
}

// resolveGeometryType decodes only the column's first stream, which always
// carries per-feature geometry kinds (as a CONST scalar for single-type
// vectors, or one value per feature otherwise).
func (d *DeferredGeometryColumn) resolveGeometryType() error {
	c := cursor.New(d.raw[d.startOffset:])

	m, err := streammeta.Parse(c)
	if err != nil {
		return err
	}

	if m.DecompressedCount == 1 {
		v, err := intstream.DecodeConst(m, c, nil)
		if err != nil {
			return err
		}
		d.geometryTypeVal = format.GeometryType(v) //nolint:gosec
		d.typeResolved = true
		return nil
	}

	vals, err := intstream.Decode(m, c, nil)
	if err != nil {
		return err
	}

	d.geometryTypeArr = make([]format.GeometryType, len(vals))
	for i, v := range vals {
		d.geometryTypeArr[i] = format.GeometryType(v) //nolint:gosec
	}
	d.typeResolved = true
	return nil
}

// Get fully decodes the column (all streams) and caches the result.
func (d *DeferredGeometryColumn) Get() (*vector.GeometryVector, error) {
	if d.cached != nil {
		return d.cached, nil
	}

	gv, err := DecodeGeometryColumn(d.raw, d.startOffset, d.streamCount, d.numFeatures)
	if err != nil {
		return nil, err
	}

	d.cached = gv
	return gv, nil
}

// DecodeGeometryColumn decodes every stream of a geometry column starting
// at startOffset: the geometry-type stream (always first), then whichever
// of the geometryOffsets/partOffsets/ringOffsets streams are present, then
// the vertex buffer and its optional dictionary offsets.
//
// Which offset level a LENGTH/OFFSET stream feeds is discovered from its
// own metadata's logical discriminant rather than assumed positionally,
// since a column may omit any offset level.
func DecodeGeometryColumn(raw []byte, startOffset, streamCount, numFeatures int) (*vector.GeometryVector, error) {
	c := cursor.New(raw[startOffset:])
	ws := &fastpfor.Workspace{}

	gv := &vector.GeometryVector{NumGeometries: numFeatures}

	for i := 0; i < streamCount; i++ {
		m, err := streammeta.Parse(c)
		if err != nil {
			return nil, err
		}

		switch {
		case i == 0:
			if err := decodeGeometryTypeStream(m, c, ws, gv); err != nil {
				return nil, err
			}

		case m.PhysicalStreamType == format.StreamData:
			vals, err := intstream.Decode(m, c, ws)
			if err != nil {
				return nil, err
			}
			gv.Vertices.Values = vals
			gv.Vertices.Type = m.AsDictionaryType()
			if m.HasMorton() {
				gv.Vertices.Morton = geom.MortonSettings{NumBits: m.NumBits, CoordinateShift: m.CoordinateShift}
			}

		case m.PhysicalStreamType == format.StreamOffset:
			vals, err := intstream.Decode(m, c, ws)
			if err != nil {
				return nil, err
			}
			if m.AsOffsetType() == format.OffsetVertex {
				gv.Vertices.Offsets = vals
			}

		case m.PhysicalStreamType == format.StreamLength:
			offsets, err := intstream.DecodeLengthToOffsets(m, c, ws)
			if err != nil {
				return nil, err
			}
			switch m.AsLengthType() {
			case format.LengthGeometries:
				gv.Topology.GeometryOffsets = offsets
			case format.LengthParts:
				gv.Topology.PartOffsets = offsets
			case format.LengthRings:
				gv.Topology.RingOffsets = offsets
			}

		default:
			return nil, errs.MalformedStreamf("blob: unexpected geometry column stream type %d", m.PhysicalStreamType)
		}
	}

	return gv, nil
}

func decodeGeometryTypeStream(m streammeta.Metadata, c *cursor.Cursor, ws *fastpfor.Workspace, gv *vector.GeometryVector) error {
	if m.DecompressedCount == 1 {
		v, err := intstream.DecodeConst(m, c, ws)
		if err != nil {
			return err
		}
		gv.Types = make([]format.GeometryType, gv.NumGeometries)
		for i := range gv.Types {
			gv.Types[i] = format.GeometryType(v) //nolint:gosec
		}
		return nil
	}

	vals, err := intstream.Decode(m, c, ws)
	if err != nil {
		return err
	}

	gv.Types = make([]format.GeometryType, len(vals))
	for i, v := range vals {
		gv.Types[i] = format.GeometryType(v) //nolint:gosec
	}
	return nil
}
