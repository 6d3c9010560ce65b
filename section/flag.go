package section

import (
	"github.com/arloliu/vola/endian"
	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
)

// Flag is the packed options word plus the body compression byte.
type Flag struct {
	// Options packs the byte order (bit 0), density (bit 1), attribute
	// packing (bit 2) and the magic number (bits 4-15). It is always stored
	// little-endian so the byte order can be read before anything else.
	Options uint16
	// Compression is the format.CompressionType applied to the body.
	Compression uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewFlag returns a little-endian sparse flag with no compression.
func NewFlag() Flag {
	return Flag{
		Options:     MagicVolaV1,
		Compression: uint8(format.CompressionNone),
	}
}

// IsLittleEndian returns whether multi-byte fields are little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// WithLittleEndian selects little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// Density returns the body layout.
func (f Flag) Density() format.Density {
	if f.Options&DensityMask != 0 {
		return format.DensityDense
	}

	return format.DensitySparse
}

// SetDensity sets the body layout.
func (f *Flag) SetDensity(d format.Density) {
	if d == format.DensityDense {
		f.Options |= DensityMask
	} else {
		f.Options &^= DensityMask
	}
}

// AttributeKind returns how attribute fields were packed into payloads.
func (f Flag) AttributeKind() format.AttributeKind {
	if f.Options&BitPayloadMask != 0 {
		return format.AttributeBits
	}

	return format.AttributeBytes
}

// SetAttributeKind records how attribute fields are packed.
func (f *Flag) SetAttributeKind(k format.AttributeKind) {
	if k == format.AttributeBits {
		f.Options |= BitPayloadMask
	} else {
		f.Options &^= BitPayloadMask
	}
}

// CompressionType returns the body compression.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// SetCompressionType sets the body compression.
func (f *Flag) SetCompressionType(c format.CompressionType) {
	f.Compression = uint8(c)
}

// GetMagicNumber returns the magic number bits.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Validate checks the magic number, reserved bit and compression type.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicVolaV1 {
		return errs.ErrInvalidHeaderFlags
	}
	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	if _, ok := validCompressions[f.Compression]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the engine for the selected byte order.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
