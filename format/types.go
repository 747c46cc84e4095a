// Package format defines the wire-level enumerations shared by the stream
// metadata header, the integer stream decoder, and the geometry
// reconstruction engine: physical/logical stream discriminants, the
// compression techniques a stream may cascade, the outer tile envelope
// codec, and the six geometry kinds MLT features carry.
package format

// PhysicalStreamType identifies what role a stream plays within a column.
type PhysicalStreamType uint8

const (
	StreamData    PhysicalStreamType = 0
	StreamPresent PhysicalStreamType = 1
	StreamLength  PhysicalStreamType = 2
	StreamOffset  PhysicalStreamType = 3
)

func (t PhysicalStreamType) String() string {
	switch t {
	case StreamData:
		return "Data"
	case StreamPresent:
		return "Present"
	case StreamLength:
		return "Length"
	case StreamOffset:
		return "Offset"
	default:
		return "Unknown"
	}
}

// DictionaryType is the logical-stream-type discriminant carried by a
// vertex-buffer DATA stream: whether vertex lookups are direct, go through a
// dictionary, carry a Morton code, or point into a string dictionary.
type DictionaryType uint8

const (
	DictionaryNone   DictionaryType = 0
	DictionaryVertex DictionaryType = 1
	DictionaryMorton DictionaryType = 2
	DictionaryString DictionaryType = 3
)

// LengthType is the logical-stream-type discriminant carried by a LENGTH stream.
type LengthType uint8

const (
	LengthVarBinary  LengthType = 0
	LengthGeometries LengthType = 1
	LengthParts      LengthType = 2
	LengthRings      LengthType = 3
	LengthTriangles  LengthType = 4
	LengthSymbol     LengthType = 5
	LengthDictionary LengthType = 6
)

// OffsetType is the logical-stream-type discriminant carried by an OFFSET stream.
type OffsetType uint8

const (
	OffsetVertex OffsetType = 0
	OffsetIndex  OffsetType = 1
	OffsetString OffsetType = 2
	OffsetKey    OffsetType = 3
)

// LogicalLevelTechnique enumerates the cascaded transforms a logical stream
// may apply on top of its physically decoded integers.
type LogicalLevelTechnique uint8

const (
	TechniqueNone               LogicalLevelTechnique = 0
	TechniqueRLE                LogicalLevelTechnique = 1
	TechniqueDelta              LogicalLevelTechnique = 2
	TechniqueComponentwiseDelta LogicalLevelTechnique = 3
	TechniqueMorton             LogicalLevelTechnique = 4
	TechniquePFOR               LogicalLevelTechnique = 5
	TechniquePFORDelta          LogicalLevelTechnique = 6
)

func (t LogicalLevelTechnique) String() string {
	switch t {
	case TechniqueNone:
		return "None"
	case TechniqueRLE:
		return "RLE"
	case TechniqueDelta:
		return "Delta"
	case TechniqueComponentwiseDelta:
		return "ComponentwiseDelta"
	case TechniqueMorton:
		return "Morton"
	case TechniquePFOR:
		return "PFOR"
	case TechniquePFORDelta:
		return "PFORDelta"
	default:
		return "Unknown"
	}
}

// PhysicalLevelTechnique enumerates how a stream's raw integers were packed
// onto the wire before any logical cascade is applied.
type PhysicalLevelTechnique uint8

const (
	PhysicalNone     PhysicalLevelTechnique = 0
	PhysicalFastPFOR PhysicalLevelTechnique = 1
	PhysicalVarint   PhysicalLevelTechnique = 2
)

func (t PhysicalLevelTechnique) String() string {
	switch t {
	case PhysicalNone:
		return "None"
	case PhysicalFastPFOR:
		return "FastPFOR"
	case PhysicalVarint:
		return "Varint"
	default:
		return "Unknown"
	}
}

// GeometryType enumerates the six geometry kinds a feature's geometry vector
// may report.
type GeometryType uint8

const (
	GeometryPoint GeometryType = iota
	GeometryMultiPoint
	GeometryLineString
	GeometryMultiLineString
	GeometryPolygon
	GeometryMultiPolygon
)

func (t GeometryType) String() string {
	switch t {
	case GeometryPoint:
		return "Point"
	case GeometryMultiPoint:
		return "MultiPoint"
	case GeometryLineString:
		return "LineString"
	case GeometryMultiLineString:
		return "MultiLineString"
	case GeometryPolygon:
		return "Polygon"
	case GeometryMultiPolygon:
		return "MultiPolygon"
	default:
		return "Unknown"
	}
}

// IsPolygonal reports whether the kind is POLYGON or MULTIPOLYGON, the two
// kinds whose rings must be closed.
func (t GeometryType) IsPolygonal() bool {
	return t == GeometryPolygon || t == GeometryMultiPolygon
}

// CompressionType identifies the outer transport codec a tile buffer may be
// wrapped in (envelope package), independent of the per-stream physical
// technique above.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0
	CompressionZstd CompressionType = 1
	CompressionS2   CompressionType = 2
	CompressionLZ4  CompressionType = 3
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
