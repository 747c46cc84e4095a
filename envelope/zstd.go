package envelope

// ZstdCompressor wraps a tile body with Zstandard framing: the best
// compression ratio of the supported codecs, at higher CPU cost. The actual
// encode/decode implementation is behind a build tag — zstd_cgo.go for the
// cgo-accelerated valyala/gozstd binding (compiled only with the nobuild
// tag), zstd_pure.go for the pure-Go klauspost/compress/zstd path used in
// every other build.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor returns the Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
