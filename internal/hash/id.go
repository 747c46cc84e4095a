// Package hash provides the xxHash64 digest used as a tile cache key.
package hash

import "github.com/cespare/xxhash/v2"

// TileDigest computes the xxHash64 digest of raw (possibly enveloped) tile
// bytes. mlt.Decode computes it once per call and uses it as the tilecache
// key for both the lookup and the insert.
func TileDigest(raw []byte) uint64 {
	return xxhash.Sum64(raw)
}
