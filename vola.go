// Package vola encodes 3-D point data into the VOLA binary spatial index.
//
// A VOLA file stores a fixed-depth octree over a cubic bounding volume. Each
// occupied leaf cell may carry a fixed-width attribute payload. Two body
// layouts exist: the sparse layout writes one child mask byte per internal
// node in pre-order, the dense layout writes a full occupancy bit grid in
// Morton order.
//
// # Basic Usage
//
// Building and encoding a point cloud:
//
//	import "github.com/arloliu/vola"
//
//	doc, _ := vola.BuildPoints(points, nil, 8,
//	    octree.WithCRS("EPSG:4326"),
//	)
//	data, _ := vola.Encode(doc, volume.WithCompression(format.CompressionZstd))
//
// Decoding:
//
//	vol, _ := vola.Decode(data)
//	for _, cell := range vol.Cells() {
//	    fmt.Println(cell)
//	}
//
// # Package Structure
//
// This package provides top-level wrappers around the grid, octree and volume
// packages for the most common use cases. Use those packages directly for
// fine-grained control such as integer index mapping or the clamp range
// policy.
package vola

import (
	"github.com/golang/geo/r3"

	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/grid"
	"github.com/arloliu/vola/octree"
	"github.com/arloliu/vola/volume"
)

var defaultEncoderOptions = []volume.EncoderOption{
	volume.WithLittleEndian(),
	volume.WithCompression(format.CompressionNone),
}

// NewSpace creates the grid space of the given depth over box.
func NewSpace(box grid.BoundingBox, depth int) (grid.Space, error) {
	return grid.NewSpace(box, depth)
}

// NewBuilder creates an octree builder over space.
//
// Available options:
//   - octree.WithAttributes(length, format.AttributeBits|AttributeBytes)
//   - octree.WithCRS(tag)
//   - octree.WithDensity(format.DensitySparse|DensityDense)
//   - octree.WithSizeHint(n)
//   - octree.WithLogger(logger)
func NewBuilder(space grid.Space, opts ...octree.BuilderOption) (*octree.Builder, error) {
	return octree.NewBuilder(space, opts...)
}

// NewEncoder creates a volume encoder with custom options.
func NewEncoder(opts ...volume.EncoderOption) (*volume.Encoder, error) {
	return volume.NewEncoder(opts...)
}

// NewDefaultEncoder creates a little-endian encoder without body compression.
func NewDefaultEncoder() (*volume.Encoder, error) {
	return volume.NewEncoder(defaultEncoderOptions...)
}

// NewDecoder creates a decoder for an encoded VOLA file.
func NewDecoder(data []byte) (*volume.Decoder, error) {
	return volume.NewDecoder(data)
}

// BuildPoints builds a document from real-valued points. The bounding box is
// the extent of the points. attrs is either nil or holds one vector per point.
//
// Example:
//
//	doc, err := vola.BuildPoints(points, colors, 10,
//	    octree.WithAttributes(3, format.AttributeBytes),
//	)
func BuildPoints(points []r3.Vector, attrs [][]float64, depth int, opts ...octree.BuilderOption) (*octree.Document, error) {
	box, err := grid.BoundsOf(points)
	if err != nil {
		return nil, err
	}

	space, err := grid.NewSpace(box, depth)
	if err != nil {
		return nil, err
	}

	opts = append([]octree.BuilderOption{octree.WithSizeHint(len(points))}, opts...)
	b, err := octree.NewBuilder(space, opts...)
	if err != nil {
		return nil, err
	}

	if err := b.InsertPoints(points, attrs); err != nil {
		return nil, err
	}

	return b.Build()
}

// Encode serializes doc. Without options the default encoder settings apply.
func Encode(doc *octree.Document, opts ...volume.EncoderOption) ([]byte, error) {
	enc, err := volume.NewEncoder(append(append([]volume.EncoderOption{}, defaultEncoderOptions...), opts...)...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(doc)
}

// Decode parses and verifies an encoded VOLA file.
func Decode(data []byte) (*volume.Volume, error) {
	dec, err := volume.NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return dec.Decode()
}
