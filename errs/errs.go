// Package errs defines the sentinel errors returned by vola packages.
//
// Callers should match them with errors.Is, since most call sites wrap the
// sentinel with additional context using fmt.Errorf("%w: ...").
package errs

import "errors"

// Conversion errors.
var (
	// ErrEmptyInput is returned when a point set has no points to encode.
	// Converters treat it as a skip, not a failure.
	ErrEmptyInput = errors.New("empty input: no points to encode")
	// ErrOutputExists is returned when the destination file already exists.
	ErrOutputExists = errors.New("output file already exists")
	// ErrIOFailure wraps failures to read a source or write a destination.
	ErrIOFailure = errors.New("i/o failure")
	// ErrUnsupportedSource is returned for source files the readers cannot decode.
	ErrUnsupportedSource = errors.New("unsupported source data")
)

// Geometry errors.
var (
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
	ErrPointOutOfRange    = errors.New("point out of range")
	ErrInvalidDepth       = errors.New("invalid octree depth")
	// ErrCorruptTree is returned when an octree arena violates its shape invariants.
	ErrCorruptTree = errors.New("corrupt octree")
	// ErrBuilderSealed is returned when a builder is used after Build.
	ErrBuilderSealed = errors.New("octree builder already built")
)

// Attribute errors.
var (
	ErrAttributeOverflow   = errors.New("attribute vector exceeds declared length")
	ErrInvalidPayloadWidth = errors.New("invalid payload width")
	ErrMissingAttributes   = errors.New("attribute count does not match point count")
)

// Format errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrCRSTooLong         = errors.New("coordinate reference tag too long")
	ErrChecksumMismatch   = errors.New("body checksum mismatch")
	ErrTruncatedBody      = errors.New("truncated body")
	ErrTrailingData       = errors.New("trailing data after body")
	ErrInvalidDensity     = errors.New("invalid density mode")
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrBodyTooLarge is returned when an uncompressed body exceeds compress.MaxBodySize.
	ErrBodyTooLarge = errors.New("body exceeds maximum size")
)
