package blob

import (
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/format"
	"github.com/maplibre/mlt-go/geom"
	"github.com/maplibre/mlt-go/vector"
)

// DefaultExtent is the tile extent assumed when a feature table is built
// without an explicit one (the common MVT/MLT convention).
const DefaultExtent = 4096

// IDColumn exposes a per-feature identifier, decoded lazily by whatever owns
// it. GetID reports ok=false when the feature has no id (a PRESENT stream
// marks it absent).
type IDColumn interface {
	GetID(i int) (id uint64, ok bool)
}

// PropertyColumn exposes one scalar per feature by column. GetValue reports
// ok=false for a null/absent value, which the virtual layer omits from a
// feature's properties rather than emitting as a zero value.
type PropertyColumn interface {
	Name() string
	GetValue(i int) (value any, ok bool)
}

// Geometry is a feature's geometry: its kind, known eagerly, and its
// coordinates, resolved lazily through the owning table's resolver.
type Geometry struct {
	Type        format.GeometryType
	coordinates func() (geom.Coordinates, error)

	resolved    geom.Coordinates
	hasResolved bool
}

// Coordinates evaluates and caches this feature's coordinates on first call.
func (g *Geometry) Coordinates() (geom.Coordinates, error) {
	if g.hasResolved {
		return g.resolved, nil
	}
	c, err := g.coordinates()
	if err != nil {
		return nil, err
	}
	g.resolved = c
	g.hasResolved = true
	return c, nil
}

// Feature is one row of a virtual layer: an optional id, its geometry, and
// its non-null properties.
type Feature struct {
	ID         uint64
	HasID      bool
	Geometry   Geometry
	Properties map[string]any
}

// FeatureTable owns everything needed to yield a tile layer's features: a
// geometry source (an already-decoded vector or a column that decodes on
// first use), an optional id column, and zero or more property columns.
type FeatureTable struct {
	name   string
	extent int

	source   geometrySource
	resolver *coordinatesResolver

	ids        IDColumn
	properties []PropertyColumn
}

// NewFeatureTable builds a feature table over a fully decoded geometry
// vector. v must be non-nil; a table with no geometry source at all is the
// one fatal construction error spec'd for feature tables.
func NewFeatureTable(name string, v *vector.GeometryVector, ids IDColumn, properties []PropertyColumn) (*FeatureTable, error) {
	if v == nil {
		return nil, errs.ErrMissingGeometry
	}

	src := resolvedGeometryVector{v: v}
	return &FeatureTable{
		name:       name,
		extent:     DefaultExtent,
		source:     src,
		resolver:   newCoordinatesResolver(src),
		ids:        ids,
		properties: properties,
	}, nil
}

// NewFeatureTableDeferred builds a feature table whose geometry column has
// not yet been decoded; the first coordinates access triggers decode.
// deferred must be non-nil.
func NewFeatureTableDeferred(name string, deferred *DeferredGeometryColumn, ids IDColumn, properties []PropertyColumn) (*FeatureTable, error) {
	if deferred == nil {
		return nil, errs.ErrMissingGeometry
	}

	return &FeatureTable{
		name:       name,
		extent:     DefaultExtent,
		source:     deferred,
		resolver:   newCoordinatesResolver(deferred),
		ids:        ids,
		properties: properties,
	}, nil
}

// WithExtent overrides the default tile extent.
func (t *FeatureTable) WithExtent(extent int) *FeatureTable {
	t.extent = extent
	return t
}

// Extent returns the tile extent features' coordinates are expressed in.
func (t *FeatureTable) Extent() int { return t.extent }

// NumFeatures returns the feature count backing this table.
func (t *FeatureTable) NumFeatures() int {
	return t.source.NumFeatures()
}

// Layer returns the virtual layer view over this table.
func (t *FeatureTable) Layer() *VirtualLayer {
	return &VirtualLayer{table: t}
}

// VirtualLayer is the read-only, on-demand view a decoder hands callers: a
// length and a feature accessor, never materializing more than what is
// asked for (beyond whatever the resolver's heuristic decides to bulk
// decode).
type VirtualLayer struct {
	table *FeatureTable
}

// Name returns the layer name.
func (l *VirtualLayer) Name() string { return l.table.name }

// Len returns the number of features in the layer.
func (l *VirtualLayer) Len() int { return l.table.NumFeatures() }

// Extent returns the tile extent features' coordinates are expressed in.
func (l *VirtualLayer) Extent() int { return l.table.extent }

// Feature constructs feature i on demand: id and geometry type are resolved
// eagerly (cheap, never touch the vertex buffer), coordinates stay lazy
// until the caller reads them.
func (l *VirtualLayer) Feature(i int) (*Feature, error) {
	t := l.table
	n := t.NumFeatures()
	if i < 0 || i >= n {
		return nil, errs.OutOfRange(i, n)
	}

	kind, err := t.source.GeometryType(i)
	if err != nil {
		return nil, err
	}

	f := &Feature{
		Geometry: Geometry{
			Type:        kind,
			coordinates: func() (geom.Coordinates, error) { return t.resolver.getCoordinates(i) },
		},
	}

	if t.ids != nil {
		if id, ok := t.ids.GetID(i); ok {
			f.ID = id
			f.HasID = true
		}
	}

	if len(t.properties) > 0 {
		f.Properties = make(map[string]any, len(t.properties))
		for _, col := range t.properties {
			if v, ok := col.GetValue(i); ok {
				f.Properties[col.Name()] = v
			}
		}
	}

	return f, nil
}

// All decodes every feature in index order, including its coordinates.
// Coordinates for each feature still go through the resolver, so a full
// scan naturally triggers bulk materialization per the resolver's
// access-pattern heuristic.
func (l *VirtualLayer) All() ([]*Feature, error) {
	out := make([]*Feature, l.Len())
	for i := range out {
		f, err := l.Feature(i)
		if err != nil {
			return nil, err
		}
		if _, err := f.Geometry.Coordinates(); err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
