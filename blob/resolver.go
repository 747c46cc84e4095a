package blob

import (
	"github.com/maplibre/mlt-go/errs"
	"github.com/maplibre/mlt-go/format"
	"github.com/maplibre/mlt-go/geom"
	"github.com/maplibre/mlt-go/vector"
)

const (
	maxIndexDeltaForSequential = 2
	nearSequentialThreshold    = 32
	absoluteAccessThreshold    = 512
)

// geometrySource is whatever a resolver lazily resolves down to a decoded
// vector.GeometryVector: either one already in hand, or a deferred column
// that decodes on first use.
type geometrySource interface {
	Get() (*vector.GeometryVector, error)
	NumFeatures() int
	GeometryType(i int) (format.GeometryType, error)
}

// resolvedGeometryVector adapts an already-decoded vector.GeometryVector to
// geometrySource, for feature tables built directly over a decoded column.
type resolvedGeometryVector struct {
	v *vector.GeometryVector
}

func (r resolvedGeometryVector) Get() (*vector.GeometryVector, error) { return r.v, nil }
func (r resolvedGeometryVector) NumFeatures() int                    { return r.v.NumGeometries }
func (r resolvedGeometryVector) GeometryType(i int) (format.GeometryType, error) {
	return r.v.GeometryType(i)
}

// coordinatesResolver mediates access to feature coordinates, switching
// between decoding one feature at a time and materializing every feature in
// one pass once access looks sequential or the caller has touched enough of
// the table that bulk decode pays for itself.
//
// Not safe for concurrent use: one resolver belongs to one feature table.
type coordinatesResolver struct {
	source geometrySource

	resolved *vector.GeometryVector

	materializedAll []geom.Coordinates

	lastIndex           int
	haveLastIndex       bool
	nearSequentialCount int
	totalAccessCount    int
}

func newCoordinatesResolver(source geometrySource) *coordinatesResolver {
	return &coordinatesResolver{source: source}
}

// getCoordinates returns feature i's coordinates, following the resolver's
// adaptive single-vs-bulk policy.
func (r *coordinatesResolver) getCoordinates(i int) (geom.Coordinates, error) {
	if i < 0 || i >= r.source.NumFeatures() {
		return nil, errs.OutOfRange(i, r.source.NumFeatures())
	}

	if r.materializedAll != nil {
		return r.materializedAll[i], nil
	}

	r.totalAccessCount++
	if r.haveLastIndex {
		d := i - r.lastIndex
		if d > 0 && d <= maxIndexDeltaForSequential {
			r.nearSequentialCount++
		} else {
			r.nearSequentialCount = 0
		}
	}
	r.lastIndex = i
	r.haveLastIndex = true

	if err := r.resolve(); err != nil {
		return nil, err
	}

	if r.nearSequentialCount >= nearSequentialThreshold || r.totalAccessCount >= absoluteAccessThreshold {
		return r.materializeAll(i)
	}

	return vector.Single(*r.resolved, i)
}

func (r *coordinatesResolver) resolve() error {
	if r.resolved != nil {
		return nil
	}
	gv, err := r.source.Get()
	if err != nil {
		return err
	}
	r.resolved = gv
	return nil
}

func (r *coordinatesResolver) materializeAll(i int) (geom.Coordinates, error) {
	all, err := vector.Bulk(*r.resolved)
	if err != nil {
		return nil, err
	}
	r.materializedAll = all
	return all[i], nil
}
