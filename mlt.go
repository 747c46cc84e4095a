// Package mlt provides top-level wrappers around the blob package for
// decoding an MLT tile buffer into a set of named virtual layers.
//
// A tile buffer is, from the outside in: a one-byte transport compression
// discriminant (see envelope.Unwrap; 0 means the body is not compressed),
// then the layer count, then per layer its header (name, extent, feature
// count, stream count) followed immediately by that layer's geometry column
// bytes. The column bytes
// themselves are decoded lazily through a blob.DeferredGeometryColumn —
// Decode never materializes a layer's coordinates, only locates where each
// layer's streams start and end.
//
// # Basic usage
//
//	tile, err := mlt.Decode(raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	layer, ok := tile.Layer("buildings")
//	if !ok {
//	    return
//	}
//	for i := 0; i < layer.Len(); i++ {
//	    feature, err := layer.Feature(i)
//	    ...
//	}
//
// # Package structure
//
// This package provides convenient top-level wrappers around the blob
// package, simplifying the common case of decoding a whole tile buffer. For
// fine-grained control over a single layer's columns, use the blob package
// directly.
package mlt

import (
	"fmt"

	"github.com/maplibre/mlt-go/blob"
	"github.com/maplibre/mlt-go/cursor"
	"github.com/maplibre/mlt-go/envelope"
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/internal/hash"
	"github.com/maplibre/mlt-go/internal/options"
	"github.com/maplibre/mlt-go/streammeta"
	"github.com/maplibre/mlt-go/tilecache"
)

// Tile is a decoded MLT tile: an ordered set of named virtual layers, none
// of whose coordinates have necessarily been materialized yet.
type Tile struct {
	order  []string
	layers map[string]*blob.VirtualLayer
}

// Layers returns the layer names in their on-wire order.
func (t *Tile) Layers() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Layer returns the named layer, or ok=false if the tile has none by that name.
func (t *Tile) Layer(name string) (*blob.VirtualLayer, bool) {
	l, ok := t.layers[name]
	return l, ok
}

// config holds the resolved settings after applying Options.
type config struct {
	extent int
	cache  *tilecache.Cache[*Tile]
}

// Option configures Decode.
type Option = options.Option[*config]

// WithTileExtent overrides the default tile extent (4096) used by layers
// that do not carry their own extent in the wire directory.
func WithTileExtent(n int) Option {
	return options.NoError[*config](func(c *config) { c.extent = n })
}

// WithCache enables a decoded-tile cache. Decode consults it keyed by the
// xxHash64 digest of the raw (still enveloped) input bytes before doing any
// parsing, and populates it after a successful decode.
func WithCache(c *tilecache.Cache[*Tile]) Option {
	return options.NoError[*config](func(cfg *config) { cfg.cache = c })
}

// Decode unwraps raw's transport envelope, parses the layer directory, and
// returns a Tile exposing each layer as a lazily-decoded blob.VirtualLayer.
//
// If a cache is configured via WithCache and already holds an entry for
// raw's digest, that entry is returned without re-parsing.
func Decode(raw []byte, opts ...Option) (*Tile, error) {
	cfg := &config{extent: blob.DefaultExtent}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var digest uint64
	if cfg.cache != nil {
		digest = hash.TileDigest(raw)
		if t, ok := cfg.cache.Get(digest); ok {
			return t, nil
		}
	}

	body, _, err := envelope.Unwrap(raw)
	if err != nil {
		return nil, fmt.Errorf("mlt: decode: %w", err)
	}

	t, err := decodeDirectory(body, cfg.extent)
	if err != nil {
		return nil, err
	}

	if cfg.cache != nil {
		cfg.cache.Put(digest, t)
	}

	return t, nil
}

// DecodeLayer decodes a single layer's bare columnar buffer directly,
// skipping both the transport envelope and the multi-layer directory. Use
// this when the caller already owns a single layer's stream bytes (e.g. a
// tile source that strips compression and layer framing upstream).
//
// raw must begin with: extent, numFeatures, streamCount (uvarints), followed
// by the layer's geometry column streams.
func DecodeLayer(name string, raw []byte, opts ...Option) (*blob.VirtualLayer, error) {
	cfg := &config{extent: blob.DefaultExtent}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	c := cursor.New(raw)
	table, _, err := decodeLayerHeader(c, name, cfg.extent)
	if err != nil {
		return nil, err
	}

	return table.Layer(), nil
}

// decodeDirectory parses the layer directory and constructs one deferred
// feature table per layer.
func decodeDirectory(body []byte, defaultExtent int) (*Tile, error) {
	c := cursor.New(body)

	layerCount, err := c.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("mlt: reading layer count: %w", err)
	}

	t := &Tile{
		order:  make([]string, 0, layerCount),
		layers: make(map[string]*blob.VirtualLayer, layerCount),
	}

	for li := uint64(0); li < layerCount; li++ {
		nameLen, err := c.ReadUvarint()
		if err != nil {
			return nil, fmt.Errorf("mlt: reading layer %d name length: %w", li, err)
		}
		nameBytes, err := c.ReadBytes(int(nameLen)) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("mlt: reading layer %d name: %w", li, err)
		}
		name := string(nameBytes)

		table, consumed, err := decodeLayerHeader(c, name, defaultExtent)
		if err != nil {
			return nil, fmt.Errorf("mlt: layer %q: %w", name, err)
		}
		c.Advance(consumed)

		if _, dup := t.layers[name]; dup {
			return nil, fmt.Errorf("mlt: duplicate layer name %q", name)
		}
		t.order = append(t.order, name)
		t.layers[name] = table.Layer()
	}

	return t, nil
}

// decodeLayerHeader reads one layer's {extent, numFeatures, streamCount}
// header from c, builds a deferred feature table over the streamCount
// streams that immediately follow, and reports how many bytes those streams
// occupy (so the caller can skip past them without decoding anything).
func decodeLayerHeader(c *cursor.Cursor, name string, defaultExtent int) (*blob.FeatureTable, int, error) {
	extent, err := c.ReadUvarint()
	if err != nil {
		return nil, 0, fmt.Errorf("reading extent: %w", err)
	}

	numFeatures, err := c.ReadUvarint()
	if err != nil {
		return nil, 0, fmt.Errorf("reading feature count: %w", err)
	}

	streamCount, err := c.ReadUvarint()
	if err != nil {
		return nil, 0, fmt.Errorf("reading stream count: %w", err)
	}

	raw := c.Bytes()
	startOffset := c.Pos()

	consumed, err := scanColumnBytes(raw, startOffset, int(streamCount)) //nolint:gosec
	if err != nil {
		return nil, 0, fmt.Errorf("scanning geometry column: %w", err)
	}

	deferred := blob.NewDeferredGeometryColumn(raw, startOffset, int(streamCount), int(numFeatures)) //nolint:gosec
	table, err := blob.NewFeatureTableDeferred(name, deferred, nil, nil)
	if err != nil {
		return nil, 0, err
	}

	if extent > 0 {
		table = table.WithExtent(int(extent)) //nolint:gosec
	} else {
		table = table.WithExtent(defaultExtent)
	}

	return table, consumed, nil
}

// scanColumnBytes walks streamCount stream headers starting at offset,
// skipping each stream's payload via its own byteLength, and returns the
// total number of bytes the column occupies. It never decodes a stream's
// values; it only needs to know where the next layer (or end of buffer)
// begins.
func scanColumnBytes(raw []byte, offset, streamCount int) (int, error) {
	c := cursor.New(raw[offset:])

	for i := 0; i < streamCount; i++ {
		m, err := streammeta.Parse(c)
		if err != nil {
			return 0, err
		}
		end := m.StreamDataStart + m.ByteLength
		if end > c.Len() {
			return 0, errs.MalformedStreamf("mlt: stream %d overruns buffer (end %d, len %d)", i, end, c.Len())
		}
		c.Set(end)
	}

	return c.Pos(), nil
}
