// Package fastpfor implements the patched-frame-of-reference integer codec
// used by the PHYSICAL_LEVEL_TECHNIQUE FastPFOR: int32 sequences compressed
// in pages of block-aligned, independently bit-packed blocks of 256 values,
// each block carrying its own exception patches for values that overflow
// its chosen bit width, plus a VByte tail for the non-block-aligned
// remainder.
//
// Decode is not reentrant across goroutines sharing the same Workspace;
// callers that decode concurrently must use one Workspace per goroutine (or
// pass nil to let each call allocate its own scratch).
package fastpfor

import (
	"github.com/maplibre/mlt-go/cursor"
	"github.com/maplibre/mlt-go/endian"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/internal/pool"
	"github.com/maplibre/mlt-go/unpack"
)

// BlockSize is the number of values a single FastPFOR block packs.
const BlockSize = unpack.BlockValues

// DefaultPageSize is the default number of values per page, always a
// multiple of BlockSize. Decoders must tolerate whatever aligned length the
// stream actually reports rather than assuming this constant.
const DefaultPageSize = 65536

var (
	bigEndian    = endian.GetBigEndianEngine()
	littleEndian = endian.GetLittleEndianEngine()
)

// Workspace holds the scratch buffers Decode reuses across blocks and pages
// to avoid per-call allocation. A zero Workspace is usable; reuse one across
// calls on the same goroutine to amortize allocation.
type Workspace struct {
	blockBitWidth []byte
	blockCExcept  []byte
	blockMaxBits  []byte
	blockPos      [][]byte
	exceptions    [33][]int32 // indexed by stream width 2..32
}

func (w *Workspace) ensureBlocks(n int) {
	if cap(w.blockBitWidth) < n {
		w.blockBitWidth = make([]byte, n)
		w.blockCExcept = make([]byte, n)
		w.blockMaxBits = make([]byte, n)
		w.blockPos = make([][]byte, n)
	}
	w.blockBitWidth = w.blockBitWidth[:n]
	w.blockCExcept = w.blockCExcept[:n]
	w.blockMaxBits = w.blockMaxBits[:n]
	w.blockPos = w.blockPos[:n]
}

// Decode reads a FastPFOR-encoded int32 sequence of originalLength values
// from c. If ws is nil, a throwaway Workspace is used.
func Decode(c *cursor.Cursor, originalLength int, ws *Workspace) ([]int32, error) {
	if ws == nil {
		ws = &Workspace{}
	}

	out := make([]int32, originalLength)

	alignedCount32, err := c.ReadInt32BE()
	if err != nil {
		return nil, errs.MalformedStreamf("fastpfor: reading aligned count: %w", err)
	}
	aligned := int(alignedCount32)
	if aligned < 0 || aligned > originalLength {
		return nil, errs.MalformedStreamf("fastpfor: aligned count %d out of range for length %d", aligned, originalLength)
	}

	consumed := 0
	for consumed < aligned {
		pageLen := DefaultPageSize
		if remaining := aligned - consumed; remaining < pageLen {
			pageLen = remaining
		}
		if err := decodePage(c, out[consumed:consumed+pageLen], ws); err != nil {
			return nil, err
		}
		consumed += pageLen
	}

	if aligned < originalLength {
		if err := decodeVByteTail(c, out[aligned:]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func decodePage(c *cursor.Cursor, out []int32, ws *Workspace) error {
	headerSize, err := c.ReadInt32BE()
	if err != nil {
		return errs.MalformedStreamf("fastpfor: reading page headerSize: %w", err)
	}
	bodyStart := c.Pos()
	bodyLen := int(headerSize) - 4
	if bodyLen < 0 {
		return errs.MalformedStreamf("fastpfor: negative page body length %d", bodyLen)
	}

	numBlocks := (len(out) + BlockSize - 1) / BlockSize
	ws.ensureBlocks(numBlocks)

	c.Advance(bodyLen)

	byteSize32, err := c.ReadInt32BE()
	if err != nil {
		return errs.MalformedStreamf("fastpfor: reading page byteSize: %w", err)
	}
	byteSize := int(byteSize32)
	if byteSize < 0 {
		return errs.MalformedStreamf("fastpfor: negative byteContainer size %d", byteSize)
	}

	containerBytes, err := c.ReadBytes(align4(byteSize))
	if err != nil {
		return errs.MalformedStreamf("fastpfor: reading byteContainer: %w", err)
	}
	if err := parseByteContainer(containerBytes[:byteSize], ws); err != nil {
		return err
	}

	if err := decodeExceptionStreams(c, ws); err != nil {
		return err
	}

	afterPage := c.Pos()
	c.Set(bodyStart)

	for block := 0; block < numBlocks; block++ {
		start := block * BlockSize
		blockLen := BlockSize
		if remaining := len(out) - start; remaining < blockLen {
			blockLen = remaining
		}

		bitWidth := int(ws.blockBitWidth[block])
		nBytes := unpack.BytesFor(blockLen, bitWidth)
		body, err := c.ReadBytes(nBytes)
		if err != nil {
			return errs.MalformedStreamf("fastpfor: reading block %d body: %w", block, err)
		}

		unpack.Unpack(out[start:start+blockLen], body, blockLen, bitWidth)

		cExcept := int(ws.blockCExcept[block])
		if cExcept == 0 {
			continue
		}

		maxBits := int(ws.blockMaxBits[block])
		streamWidth := maxBits - bitWidth
		if streamWidth < 2 || streamWidth > 32 {
			return errs.MalformedStreamf("fastpfor: invalid exception bit-width %d", streamWidth)
		}

		stream := ws.exceptions[streamWidth]
		if len(stream) < cExcept {
			return errs.MalformedStreamf("fastpfor: exception count mismatch: need %d, have %d", cExcept, len(stream))
		}

		positions := ws.blockPos[block]
		for k := 0; k < cExcept; k++ {
			pos := int(positions[k])
			if pos >= blockLen {
				return errs.MalformedStreamf("fastpfor: exception position %d out of block range %d", pos, blockLen)
			}
			high := stream[0]
			stream = stream[1:]
			out[start+pos] |= high << uint(bitWidth) //nolint:gosec
		}
		ws.exceptions[streamWidth] = stream
	}

	c.Set(afterPage)

	return nil
}

// parseByteContainer unpacks the per-block header bytes: bitWidth, cExcept,
// and (when cExcept>0) maxBits followed by cExcept one-byte positions.
func parseByteContainer(data []byte, ws *Workspace) error {
	pos := 0
	for block := range ws.blockBitWidth {
		if pos >= len(data) {
			return errs.MalformedStreamf("fastpfor: byteContainer truncated at block %d", block)
		}
		bitWidth := data[pos]
		pos++
		if pos >= len(data) {
			return errs.MalformedStreamf("fastpfor: byteContainer truncated at block %d cExcept", block)
		}
		cExcept := data[pos]
		pos++

		ws.blockBitWidth[block] = bitWidth
		ws.blockCExcept[block] = cExcept

		if cExcept == 0 {
			ws.blockMaxBits[block] = 0
			ws.blockPos[block] = nil
			continue
		}

		if pos >= len(data) {
			return errs.MalformedStreamf("fastpfor: byteContainer truncated at block %d maxBits", block)
		}
		maxBits := data[pos]
		pos++

		if pos+int(cExcept) > len(data) {
			return errs.MalformedStreamf("fastpfor: byteContainer truncated at block %d positions", block)
		}
		ws.blockMaxBits[block] = maxBits
		ws.blockPos[block] = data[pos : pos+int(cExcept)]
		pos += int(cExcept)
	}
	return nil
}

// decodeExceptionStreams reads the exception-bit-width bitmap and, for each
// present width w in [2,32], its length-prefixed w-bit-packed values.
func decodeExceptionStreams(c *cursor.Cursor, ws *Workspace) error {
	for w := 2; w <= 32; w++ {
		ws.exceptions[w] = ws.exceptions[w][:0]
	}

	bitmap32, err := c.ReadInt32BE()
	if err != nil {
		return errs.MalformedStreamf("fastpfor: reading exception bitmap: %w", err)
	}
	bitmap := uint32(bitmap32) //nolint:gosec

	for w := 2; w <= 32; w++ {
		if bitmap&(1<<uint(w-2)) == 0 {
			continue
		}

		length32, err := c.ReadInt32BE()
		if err != nil {
			return errs.MalformedStreamf("fastpfor: reading exception stream %d length: %w", w, err)
		}
		length := int(length32)
		if length < 0 {
			return errs.MalformedStreamf("fastpfor: negative exception stream %d length", w)
		}

		body, err := c.ReadBytes(align4(unpack.BytesFor(length, w)))
		if err != nil {
			return errs.MalformedStreamf("fastpfor: reading exception stream %d body: %w", w, err)
		}

		values, release := pool.GetInt32Slice(length)
		unpack.Unpack(values, body, length, w)
		ws.exceptions[w] = append(ws.exceptions[w][:0], values...)
		release()
	}

	return nil
}

// decodeVByteTail decodes len(out) values using the non-block-aligned tail
// encoding: 7 bits per byte, MSB=1 marks the terminating byte of a value
// (the inverse of the standard varint continuation convention).
func decodeVByteTail(c *cursor.Cursor, out []int32) error {
	for i := range out {
		var value uint32
		var shift uint
		for {
			b, err := c.ReadByte()
			if err != nil {
				return errs.MalformedStreamf("fastpfor: reading VByte tail value %d: %w", i, err)
			}
			value |= uint32(b&0x7f) << shift
			shift += 7
			if b&0x80 != 0 {
				break
			}
			if shift >= 35 {
				return errs.MalformedStreamf("fastpfor: VByte tail value %d overflow", i)
			}
		}
		out[i] = int32(value) //nolint:gosec
	}
	return nil
}

func align4(n int) int {
	return (n + 3) &^ 3
}
