// Package intstream decodes a single metadata-described integer stream: a
// physical layer (NONE/VARINT/FASTPFOR) producing the stream's raw int32
// values, followed by a cascade of up to two logical techniques (RLE,
// DELTA, COMPONENTWISE_DELTA, MORTON, PFOR, PFOR_DELTA) that reconstruct
// the stream's logical values from them.
package intstream

import (
	"github.com/maplibre/mlt-go/cursor"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/fastpfor"
	"github.com/maplibre/mlt-go/format"
	"github.com/maplibre/mlt-go/streammeta"
)

// Decode reads and fully reconstructs one integer stream. The cursor must
// already be positioned at metadata.StreamDataStart (i.e. Decode is called
// immediately after streammeta.Parse on the same cursor).
//
// Post-condition: the cursor ends at metadata.StreamDataStart + metadata.ByteLength.
func Decode(m streammeta.Metadata, c *cursor.Cursor, ws *fastpfor.Workspace) ([]int32, error) {
	vals, err := decodePhysical(m, c, ws)
	if err != nil {
		return nil, err
	}

	vals, err = applyTechnique(vals, m.LogicalTechnique2, m)
	if err != nil {
		return nil, err
	}
	vals, err = applyTechnique(vals, m.LogicalTechnique1, m)
	if err != nil {
		return nil, err
	}

	if want := m.StreamDataStart + m.ByteLength; c.Pos() != want {
		return nil, errs.MalformedStreamf("intstream: cursor at %d after decode, want %d", c.Pos(), want)
	}

	return vals, nil
}

// DecodeConst decodes a CONST-vector stream and returns its single
// replicated scalar; the caller is responsible for replicating it across
// the vector's reported length.
func DecodeConst(m streammeta.Metadata, c *cursor.Cursor, ws *fastpfor.Workspace) (int32, error) {
	vals, err := Decode(m, c, ws)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, errs.MalformedStreamf("intstream: const stream decoded zero values")
	}
	return vals[0], nil
}

// DecodeLengthToOffsets decodes a LENGTH stream of metadata.DecompressedCount
// lengths and returns a prefix-sum offsets buffer of size
// metadata.DecompressedCount+1, with out[0]=0.
func DecodeLengthToOffsets(m streammeta.Metadata, c *cursor.Cursor, ws *fastpfor.Workspace) ([]int32, error) {
	lengths, err := Decode(m, c, ws)
	if err != nil {
		return nil, err
	}

	out := make([]int32, len(lengths)+1)
	for i, l := range lengths {
		out[i+1] = out[i] + l
	}
	return out, nil
}

func decodePhysical(m streammeta.Metadata, c *cursor.Cursor, ws *fastpfor.Workspace) ([]int32, error) {
	switch m.PhysicalTechnique {
	case format.PhysicalNone:
		out := make([]int32, m.NumValues)
		for i := range out {
			v, err := c.ReadInt32BE()
			if err != nil {
				return nil, errs.MalformedStreamf("intstream: reading NONE value %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil

	case format.PhysicalVarint:
		out := make([]int32, m.NumValues)
		for i := range out {
			v, err := c.ReadUvarint()
			if err != nil {
				return nil, errs.MalformedStreamf("intstream: reading VARINT value %d: %w", i, err)
			}
			out[i] = int32(uint32(v)) //nolint:gosec
		}
		return out, nil

	case format.PhysicalFastPFOR:
		vals, err := fastpfor.Decode(c, m.NumValues, ws)
		if err != nil {
			return nil, err
		}
		return vals, nil

	default:
		return nil, errs.MalformedStreamf("intstream: unknown physical technique %d", m.PhysicalTechnique)
	}
}

func applyTechnique(vals []int32, t format.LogicalLevelTechnique, m streammeta.Metadata) ([]int32, error) {
	switch t {
	case format.TechniqueNone, format.TechniqueMorton, format.TechniquePFOR:
		return vals, nil

	case format.TechniqueRLE:
		return expandRLE(vals, m)

	case format.TechniqueDelta, format.TechniquePFORDelta:
		return prefixSumZigZag(vals), nil

	case format.TechniqueComponentwiseDelta:
		return componentwisePrefixSum(vals), nil

	default:
		return nil, errs.MalformedStreamf("intstream: unknown logical technique %d", t)
	}
}

func expandRLE(vals []int32, m streammeta.Metadata) ([]int32, error) {
	runs := m.Runs
	if runs < 0 || runs > len(vals) {
		return nil, errs.MalformedStreamf("intstream: RLE runs %d out of range for %d values", runs, len(vals))
	}

	distinct := vals[runs:]
	counts := vals[:runs]
	if len(distinct) != runs {
		return nil, errs.MalformedStreamf("intstream: RLE run/value count mismatch: %d runs, %d values", runs, len(distinct))
	}

	out := make([]int32, 0, m.DecompressedCount)
	for i := 0; i < runs; i++ {
		count := int(counts[i])
		if count < 0 {
			return nil, errs.MalformedStreamf("intstream: RLE negative run length %d", count)
		}
		value := distinct[i]
		for k := 0; k < count; k++ {
			out = append(out, value)
		}
	}

	if len(out) != m.DecompressedCount {
		return nil, errs.MalformedStreamf("intstream: RLE expanded to %d values, want %d", len(out), m.DecompressedCount)
	}

	return out, nil
}

func prefixSumZigZag(vals []int32) []int32 {
	out := make([]int32, len(vals))
	var sum int32
	for i, v := range vals {
		sum += cursor.ZigZagDecode32(uint32(v)) //nolint:gosec
		out[i] = sum
	}
	return out
}

func componentwisePrefixSum(vals []int32) []int32 {
	out := make([]int32, len(vals))
	var sumEven, sumOdd int32
	for i, v := range vals {
		d := cursor.ZigZagDecode32(uint32(v)) //nolint:gosec
		if i%2 == 0 {
			sumEven += d
			out[i] = sumEven
		} else {
			sumOdd += d
			out[i] = sumOdd
		}
	}
	return out
}
