// Package streammeta decodes the per-stream header that precedes every
// integer stream in a column: physical/logical stream type, the cascade of
// logical and physical techniques applied to the stream's values, and the
// varint-encoded counts needed to know how many bytes of payload follow.
package streammeta

import (
	"github.com/maplibre/mlt-go/cursor"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/format"
)

// Metadata is the record read before each integer stream.
type Metadata struct {
	PhysicalStreamType format.PhysicalStreamType

	// LogicalStreamType is the raw high-nibble discriminant; its meaning
	// (DictionaryType, LengthType, or OffsetType) depends on
	// PhysicalStreamType and is exposed via the As* accessors.
	LogicalStreamType uint8

	LogicalTechnique1 format.LogicalLevelTechnique
	LogicalTechnique2 format.LogicalLevelTechnique
	PhysicalTechnique format.PhysicalLevelTechnique

	NumValues         int
	ByteLength        int
	DecompressedCount int

	// Present only when LogicalTechnique1 or LogicalTechnique2 is RLE.
	Runs         int
	NumRleValues int

	// Present only for MORTON-dictionary vertex buffers.
	NumBits         int
	CoordinateShift int

	// StreamDataStart is the cursor position immediately after the header,
	// i.e. where the stream's payload begins.
	StreamDataStart int
}

// AsDictionaryType interprets LogicalStreamType for a DATA stream.
func (m Metadata) AsDictionaryType() format.DictionaryType {
	return format.DictionaryType(m.LogicalStreamType)
}

// AsLengthType interprets LogicalStreamType for a LENGTH stream.
func (m Metadata) AsLengthType() format.LengthType {
	return format.LengthType(m.LogicalStreamType)
}

// AsOffsetType interprets LogicalStreamType for an OFFSET stream.
func (m Metadata) AsOffsetType() format.OffsetType {
	return format.OffsetType(m.LogicalStreamType)
}

// HasRLE reports whether either logical technique slot is RLE.
func (m Metadata) HasRLE() bool {
	return m.LogicalTechnique1 == format.TechniqueRLE || m.LogicalTechnique2 == format.TechniqueRLE
}

// HasMorton reports whether either logical technique slot is MORTON.
func (m Metadata) HasMorton() bool {
	return m.LogicalTechnique1 == format.TechniqueMorton || m.LogicalTechnique2 == format.TechniqueMorton
}

// Parse reads one stream metadata header from c.
//
// Wire layout:
//  1. one byte: physicalStreamType in the low nibble, logicalStreamType in the high nibble;
//  2. a packed techniques byte: bits [7:5] logicalLevelTechnique1, [4:2] logicalLevelTechnique2, [1:0] physicalLevelTechnique;
//  3. numValues, byteLength varints;
//  4. if either logical technique is RLE: runs, numRleValues varints;
//  5. if either logical technique is MORTON: numBits, coordinateShift varints.
func Parse(c *cursor.Cursor) (Metadata, error) {
	var m Metadata

	typeByte, err := c.ReadByte()
	if err != nil {
		return m, errs.MalformedStreamf("streammeta: reading type byte: %w", err)
	}
	m.PhysicalStreamType = format.PhysicalStreamType(typeByte & 0x0f)
	m.LogicalStreamType = typeByte >> 4

	techniquesByte, err := c.ReadByte()
	if err != nil {
		return m, errs.MalformedStreamf("streammeta: reading techniques byte: %w", err)
	}
	m.LogicalTechnique1 = format.LogicalLevelTechnique((techniquesByte >> 5) & 0x07)
	m.LogicalTechnique2 = format.LogicalLevelTechnique((techniquesByte >> 2) & 0x07)
	m.PhysicalTechnique = format.PhysicalLevelTechnique(techniquesByte & 0x03)

	numValues, err := c.ReadUvarint()
	if err != nil {
		return m, errs.MalformedStreamf("streammeta: reading numValues: %w", err)
	}
	m.NumValues = int(numValues)
	m.DecompressedCount = m.NumValues

	byteLength, err := c.ReadUvarint()
	if err != nil {
		return m, errs.MalformedStreamf("streammeta: reading byteLength: %w", err)
	}
	m.ByteLength = int(byteLength)

	if m.HasRLE() {
		runs, err := c.ReadUvarint()
		if err != nil {
			return m, errs.MalformedStreamf("streammeta: reading runs: %w", err)
		}
		m.Runs = int(runs)

		numRleValues, err := c.ReadUvarint()
		if err != nil {
			return m, errs.MalformedStreamf("streammeta: reading numRleValues: %w", err)
		}
		m.NumRleValues = int(numRleValues)
		m.DecompressedCount = m.NumRleValues
	}

	if m.HasMorton() {
		numBits, err := c.ReadUvarint()
		if err != nil {
			return m, errs.MalformedStreamf("streammeta: reading numBits: %w", err)
		}
		m.NumBits = int(numBits)

		coordinateShift, err := c.ReadUvarint()
		if err != nil {
			return m, errs.MalformedStreamf("streammeta: reading coordinateShift: %w", err)
		}
		m.CoordinateShift = int(coordinateShift)
	}

	m.StreamDataStart = c.Pos()

	return m, nil
}
