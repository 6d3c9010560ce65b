// Package attr packs per-point attribute vectors into fixed-width payloads.
//
// Every occupied cell of a document stores exactly the same number of payload
// bytes, so decoders can address payloads by stride. Two packings exist:
//
//   - Bits: one bit per field, MSB first, set iff the value is non-zero.
//     Width is ceil(length/8) bytes.
//   - Bytes: one byte per field, the value rounded and clamped to [0, 255].
//     Width is length bytes.
//
// Unused trailing bits and bytes are zero.
package attr

import (
	"fmt"
	"math"

	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/internal/bitio"
	"github.com/arloliu/vola/section"
)

const (
	Bits  = format.AttributeBits
	Bytes = format.AttributeBytes
)

// PackWidth returns the payload width in bytes for length attribute fields.
func PackWidth(length int, kind format.AttributeKind) int {
	if length <= 0 {
		return 0
	}
	if kind == Bytes {
		return length
	}

	return bitio.ByteLen(length)
}

// Packer encodes attribute vectors of a declared length.
type Packer struct {
	length int
	kind   format.AttributeKind
	width  int
}

// NewPacker creates a Packer for vectors of up to length fields.
func NewPacker(length int, kind format.AttributeKind) (*Packer, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative attribute length %d", errs.ErrInvalidPayloadWidth, length)
	}
	if kind != Bits && kind != Bytes {
		return nil, fmt.Errorf("%w: unknown attribute kind %d", errs.ErrInvalidPayloadWidth, kind)
	}

	width := PackWidth(length, kind)
	if width > section.MaxPayloadWidth {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", errs.ErrInvalidPayloadWidth, width, section.MaxPayloadWidth)
	}

	return &Packer{length: length, kind: kind, width: width}, nil
}

func (p *Packer) Length() int                { return p.length }
func (p *Packer) Kind() format.AttributeKind { return p.kind }

// Width returns the payload width in bytes.
func (p *Packer) Width() int {
	return p.width
}

// Pack encodes values into a new payload of exactly Width bytes. Missing
// trailing values are packed as zero. Pack returns nil when Width is zero.
func (p *Packer) Pack(values []float64) ([]byte, error) {
	if len(values) > p.length {
		return nil, fmt.Errorf("%w: %d values for %d fields", errs.ErrAttributeOverflow, len(values), p.length)
	}
	if p.width == 0 {
		return nil, nil
	}

	payload := make([]byte, p.width)
	for i, v := range values {
		if p.kind == Bytes {
			payload[i] = clampByte(v)
		} else if v != 0 && !math.IsNaN(v) {
			bitio.Set(payload, i)
		}
	}

	return payload, nil
}

// Unpack decodes the first length fields of payload.
func Unpack(payload []byte, length int, kind format.AttributeKind) ([]float64, error) {
	if len(payload) < PackWidth(length, kind) {
		return nil, fmt.Errorf("%w: %d bytes for %d %s fields", errs.ErrInvalidPayloadWidth, len(payload), length, kind)
	}

	values := make([]float64, length)
	for i := range values {
		if kind == Bytes {
			values[i] = float64(payload[i])
		} else {
			values[i] = float64(bitio.Get(payload, i))
		}
	}

	return values, nil
}

func clampByte(v float64) byte {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}

	return byte(math.Round(v))
}
