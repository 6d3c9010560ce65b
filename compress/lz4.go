package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/vola/errs"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses bodies with LZ4 block compression.
//
// The block format does not record the decoded size, so each stored block is
// prefixed with it as a uvarint.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into a single size-prefixed LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > MaxBodySize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrBodyTooLarge, len(data))
	}

	dst := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	off := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[off:])
	if err != nil {
		return nil, err
	}

	return dst[:off+n], nil
}

// Decompress decodes a size-prefixed LZ4 block into a buffer of exactly the
// recorded size.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, off := binary.Uvarint(data)
	if off <= 0 {
		return nil, fmt.Errorf("%w: lz4 size prefix", errs.ErrTruncatedBody)
	}
	if size > MaxBodySize {
		return nil, fmt.Errorf("%w: lz4 block decodes to %d bytes", errs.ErrBodyTooLarge, size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[off:], buf)
	if err != nil {
		return nil, err
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("%w: lz4 block decoded %d of %d bytes", errs.ErrTruncatedBody, n, size)
	}

	return buf, nil
}
