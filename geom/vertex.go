package geom

import (
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/format"
	"github.com/maplibre/mlt-go/morton"
)

// At returns the (x, y) point for logical vertex index i, resolving
// dictionary indirection and Morton decoding as needed. A Morton-typed
// buffer with no {numBits, coordinateShift} settings (NumBits == 0) fails
// with ErrMissingParameter rather than silently decoding with a zeroed
// Z-order width.
func (vb VertexBuffer) At(i int) (Point, error) {
	idx := i
	if len(vb.Offsets) > 0 {
		idx = int(vb.Offsets[i])
	}

	if vb.Type == format.DictionaryMorton {
		if vb.Morton.NumBits == 0 {
			return Point{}, errs.MissingParameterf("morton vertex buffer missing numBits/coordinateShift")
		}
		code := vb.Values[idx]
		settings := morton.Settings{NumBits: vb.Morton.NumBits, CoordinateShift: vb.Morton.CoordinateShift}
		x, y := morton.Decode(code, settings)
		return Point{X: x, Y: y}, nil
	}

	return Point{X: vb.Values[idx*2], Y: vb.Values[idx*2+1]}, nil
}
