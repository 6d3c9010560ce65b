package compress

// ZstdCompressor compresses bodies with Zstandard.
//
// Dense grids are mostly runs of zero bytes and compress by orders of
// magnitude; sparse trees gain less. The pure-Go implementation is used
// unless the module is built with the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
