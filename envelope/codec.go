// Package envelope strips and applies the outer transport compression a
// tile buffer may be wrapped in before the columnar cursor ever runs. It is
// independent of the per-stream physical technique (FastPFOR/Varint) the
// intstream package handles — envelope compression, when present, covers
// the whole columnar body as one opaque blob.
package envelope

import (
	"fmt"

	"github.com/maplibre/mlt-go/format"
)

// Compressor compresses a columnar tile body before it is written to the
// wire.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a columnar tile body from its compressed form.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions for one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns the Codec for compressionType, or an error if the
// type is not one of the enumerated CompressionType values.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("envelope: unsupported compression type %s", compressionType)
	}
}

// Wrap prepends the one-byte compression discriminant and compresses body
// with the matching codec.
func Wrap(body []byte, compressionType format.CompressionType) ([]byte, error) {
	codec, err := CreateCodec(compressionType)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("envelope: compress: %w", err)
	}

	out := make([]byte, 0, len(compressed)+1)
	out = append(out, byte(compressionType))
	out = append(out, compressed...)
	return out, nil
}

// Unwrap reads the one-byte compression discriminant off the front of raw
// and returns the decompressed columnar body plus the codec that was used.
func Unwrap(raw []byte) ([]byte, format.CompressionType, error) {
	if len(raw) == 0 {
		return nil, 0, fmt.Errorf("envelope: empty tile buffer")
	}

	compressionType := format.CompressionType(raw[0])
	codec, err := CreateCodec(compressionType)
	if err != nil {
		return nil, 0, err
	}

	body, err := codec.Decompress(raw[1:])
	if err != nil {
		return nil, compressionType, fmt.Errorf("envelope: decompress: %w", err)
	}

	return body, compressionType, nil
}
