// Package errs defines the sentinel errors returned by every decode path in
// the module. Callers should match kinds with errors.Is rather than string
// comparison; the wrapping helpers below attach the offending index or
// stream kind to the message without losing the sentinel.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a feature index falls outside [0, numFeatures).
	ErrOutOfRange = errors.New("mlt: index out of range")

	// ErrMalformedStream is returned for FastPFOR exception-count mismatches,
	// invalid exception bit widths, truncated varints, or a cursor that did
	// not land on streamDataStart+byteLength after decoding a stream.
	ErrMalformedStream = errors.New("mlt: malformed stream")

	// ErrUnsupportedGeometry is returned for a geometry kind outside the
	// enumerated set (POINT, MULTIPOINT, LINESTRING, MULTILINESTRING,
	// POLYGON, MULTIPOLYGON).
	ErrUnsupportedGeometry = errors.New("mlt: unsupported geometry type")

	// ErrMissingGeometry is returned when a feature table has neither a
	// decoded geometry vector nor a deferred geometry column.
	ErrMissingGeometry = errors.New("mlt: feature table has no geometry source")

	// ErrMissingParameter is returned when a Morton-encoded vertex buffer
	// lacks its required {numBits, coordinateShift} settings.
	ErrMissingParameter = errors.New("mlt: missing required parameter")
)

// OutOfRange wraps ErrOutOfRange with the offending index and the bound it
// was checked against.
func OutOfRange(index, length int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, index, length)
}

// MalformedStreamf wraps ErrMalformedStream with a formatted detail message.
func MalformedStreamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedStream, fmt.Sprintf(format, args...))
}

// UnsupportedGeometry wraps ErrUnsupportedGeometry with the offending kind value.
func UnsupportedGeometry(kind int) error {
	return fmt.Errorf("%w: kind %d", ErrUnsupportedGeometry, kind)
}

// MissingParameterf wraps ErrMissingParameter with a formatted detail message.
func MissingParameterf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMissingParameter, fmt.Sprintf(format, args...))
}
