package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/vola/endian"
	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
)

// Header is the fixed-size section at the start of every VOLA file.
type Header struct {
	// Flag holds byte order, density, attribute packing and compression.
	Flag Flag // byte offset 0-3
	// Depth is the number of octree levels below the root.
	Depth uint8 // byte offset 2
	// PayloadWidth is the number of payload bytes per occupied cell.
	PayloadWidth uint16 // byte offset 4-5
	// Min and Max are the bounding box corners in the CRS.
	Min [3]float64 // byte offset 8-31
	Max [3]float64 // byte offset 32-55
	// CRS is the opaque coordinate reference tag, at most CRSSize bytes.
	CRS string // byte offset 56-71
	// OccupiedCount is the number of occupied terminal cells.
	OccupiedCount uint64 // byte offset 72-79
	// BodyLength is the stored (possibly compressed) body length in bytes.
	BodyLength uint64 // byte offset 80-87
	// Checksum is the xxHash64 of the uncompressed body.
	Checksum uint64 // byte offset 88-95
}

// NewHeader creates a header with a default flag for the given depth.
func NewHeader(depth uint8) *Header {
	return &Header{
		Flag:  NewFlag(),
		Depth: depth,
	}
}

// SetCRS sets the coordinate reference tag.
func (h *Header) SetCRS(tag string) error {
	if len(tag) > CRSSize {
		return fmt.Errorf("%w: %q is %d bytes, max %d", errs.ErrCRSTooLong, tag, len(tag), CRSSize)
	}
	if bytes.IndexByte([]byte(tag), 0) >= 0 {
		return fmt.Errorf("%w: tag contains NUL", errs.ErrCRSTooLong)
	}
	h.CRS = tag

	return nil
}

// CellsPerAxis returns 2^Depth.
func (h *Header) CellsPerAxis() uint64 {
	return 1 << h.Depth
}

// Validate checks that the header describes a decodable body.
func (h *Header) Validate() error {
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	maxDepth := uint8(MaxDepth)
	if h.Flag.Density() == format.DensityDense {
		maxDepth = MaxDenseDepth
	}
	if h.Depth < 1 || h.Depth > maxDepth {
		return fmt.Errorf("%w: depth %d not in [1, %d] for %s layout",
			errs.ErrInvalidDepth, h.Depth, maxDepth, h.Flag.Density())
	}

	for axis := range 3 {
		if h.Min[axis] > h.Max[axis] {
			return fmt.Errorf("%w: min %v > max %v", errs.ErrInvalidBoundingBox, h.Min, h.Max)
		}
	}

	return nil
}

// Parse parses the header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Depth = data[DepthOffset]
	h.Flag.Compression = data[CompressionOffset]

	engine := h.Flag.GetEndianEngine()

	h.PayloadWidth = engine.Uint16(data[PayloadWidthOffset:ReservedOffset])
	for axis := range 3 {
		h.Min[axis] = endian.Float64(engine, data[BoxMinOffset+8*axis:])
		h.Max[axis] = endian.Float64(engine, data[BoxMaxOffset+8*axis:])
	}
	h.CRS = string(bytes.TrimRight(data[CRSOffset:CRSOffset+CRSSize], "\x00"))
	h.OccupiedCount = engine.Uint64(data[OccupiedOffset:BodyLengthOffset])
	h.BodyLength = engine.Uint64(data[BodyLengthOffset:ChecksumOffset])
	h.Checksum = engine.Uint64(data[ChecksumOffset:HeaderSize])

	return h.Validate()
}

// Bytes serializes the header into HeaderSize bytes.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[DepthOffset] = h.Depth
	b[CompressionOffset] = h.Flag.Compression
	engine.PutUint16(b[PayloadWidthOffset:ReservedOffset], h.PayloadWidth)
	for axis := range 3 {
		endian.PutFloat64(engine, b[BoxMinOffset+8*axis:], h.Min[axis])
		endian.PutFloat64(engine, b[BoxMaxOffset+8*axis:], h.Max[axis])
	}
	copy(b[CRSOffset:CRSOffset+CRSSize], h.CRS)
	engine.PutUint64(b[OccupiedOffset:BodyLengthOffset], h.OccupiedCount)
	engine.PutUint64(b[BodyLengthOffset:ChecksumOffset], h.BodyLength)
	engine.PutUint64(b[ChecksumOffset:HeaderSize], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
