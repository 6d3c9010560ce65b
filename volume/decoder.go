package volume

import (
	"fmt"

	"github.com/arloliu/vola/compress"
	"github.com/arloliu/vola/errs"
	"github.com/arloliu/vola/format"
	"github.com/arloliu/vola/internal/hash"
	"github.com/arloliu/vola/section"
)

// Decoder reads a VOLA file held in memory.
type Decoder struct {
	header section.Header
	data   []byte
}

// NewDecoder parses and validates the header of data.
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	return &Decoder{header: header, data: data}, nil
}

// Header returns the parsed header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Body returns the uncompressed body after verifying its checksum.
func (d *Decoder) Body() ([]byte, error) {
	stored := d.data[section.HeaderSize:]
	if uint64(len(stored)) < d.header.BodyLength {
		return nil, fmt.Errorf("%w: %d of %d bytes", errs.ErrTruncatedBody, len(stored), d.header.BodyLength)
	}
	if uint64(len(stored)) > d.header.BodyLength {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrTrailingData, uint64(len(stored))-d.header.BodyLength)
	}

	codec, err := compress.GetCodec(d.header.Flag.CompressionType())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCompression, err)
	}
	body, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("decompress body: %w", err)
	}

	if !hash.Verify(body, d.header.Checksum) {
		return nil, fmt.Errorf("%w: want %016x, got %016x", errs.ErrChecksumMismatch, d.header.Checksum, hash.Checksum(body))
	}

	return body, nil
}

// Decode reads the whole volume.
func (d *Decoder) Decode() (*Volume, error) {
	body, err := d.Body()
	if err != nil {
		return nil, err
	}

	h := d.header
	depth, width := int(h.Depth), int(h.PayloadWidth)

	v := &Volume{header: h}
	switch h.Flag.Density() {
	case format.DensityDense:
		v.cells, v.payloads, err = readDense(body, depth, width, h.OccupiedCount)
	default:
		v.cells, v.payloads, err = readSparse(body, depth, width, h.OccupiedCount)
	}
	if err != nil {
		return nil, err
	}

	if uint64(len(v.cells)) != h.OccupiedCount {
		return nil, fmt.Errorf("%w: decoded %d cells, header says %d", errs.ErrCorruptTree, len(v.cells), h.OccupiedCount)
	}
	v.buildIndex()

	return v, nil
}
