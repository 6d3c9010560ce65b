package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/vola/errs"
)

// S2Compressor compresses bodies with S2, trading ratio for speed.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data using S2 block encoding.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes an S2 block.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > MaxBodySize {
		return nil, fmt.Errorf("%w: s2 block decodes to %d bytes", errs.ErrBodyTooLarge, n)
	}

	return s2.Decode(nil, data)
}
