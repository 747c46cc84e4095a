//go:build nobuild

package envelope

import (
	"github.com/valyala/gozstd"
)

// Compress compresses data using cgo-bound libzstd at a low level, favoring
// speed over ratio since tile bodies are sent, not archived.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress restores data using cgo-bound libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return gozstd.Decompress(nil, data)
}
